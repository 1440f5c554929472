//go:build linux

package player

/*
#include <mpv/client.h>
#include <stdlib.h>

// osd_overlay issues an osd-overlay command through mpv_command_node.
// A "none" format removes the overlay; data and resolution are then omitted.
static int osd_overlay(mpv_handle *h, int64_t id, const char *format, const char *data, int64_t res_x, int64_t res_y) {
    mpv_node vals[6];
    char *keys[6];
    int n = 0;

    keys[n] = "name";
    vals[n].format = MPV_FORMAT_STRING;
    vals[n].u.string = "osd-overlay";
    n++;

    keys[n] = "id";
    vals[n].format = MPV_FORMAT_INT64;
    vals[n].u.int64 = id;
    n++;

    keys[n] = "format";
    vals[n].format = MPV_FORMAT_STRING;
    vals[n].u.string = (char*)format;
    n++;

    if (data != NULL) {
        keys[n] = "data";
        vals[n].format = MPV_FORMAT_STRING;
        vals[n].u.string = (char*)data;
        n++;

        keys[n] = "res_x";
        vals[n].format = MPV_FORMAT_INT64;
        vals[n].u.int64 = res_x;
        n++;

        keys[n] = "res_y";
        vals[n].format = MPV_FORMAT_INT64;
        vals[n].u.int64 = res_y;
        n++;
    }

    mpv_node_list list = {
        .num    = n,
        .values = vals,
        .keys   = keys,
    };

    mpv_node cmd;
    cmd.format = MPV_FORMAT_NODE_MAP;
    cmd.u.list = &list;

    mpv_node result;
    int err = mpv_command_node(h, &cmd, &result);
    if (err >= 0) {
        mpv_free_node_contents(&result);
    }
    return err;
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/gen2brain/go-mpv"
)

// handle extracts the mpv_handle; mpv.Mpv's only field is *C.mpv_handle.
func handle(m *mpv.Mpv) *C.mpv_handle {
	return *(**C.mpv_handle)(unsafe.Pointer(m))
}

func osdOverlaySet(m *mpv.Mpv, id int, data string, resX, resY int) error {
	cFormat := C.CString("ass-events")
	defer C.free(unsafe.Pointer(cFormat))
	cData := C.CString(data)
	defer C.free(unsafe.Pointer(cData))

	rc := C.osd_overlay(handle(m), C.int64_t(id), cFormat, cData, C.int64_t(resX), C.int64_t(resY))
	if rc < 0 {
		return fmt.Errorf("osd-overlay %d: %s", id, C.GoString(C.mpv_error_string(rc)))
	}
	return nil
}

func osdOverlayRemove(m *mpv.Mpv, id int) error {
	cFormat := C.CString("none")
	defer C.free(unsafe.Pointer(cFormat))

	rc := C.osd_overlay(handle(m), C.int64_t(id), cFormat, nil, 0, 0)
	if rc < 0 {
		return fmt.Errorf("osd-overlay %d remove: %s", id, C.GoString(C.mpv_error_string(rc)))
	}
	return nil
}
