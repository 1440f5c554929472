package control

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/depeter/couchosd/internal/osd"
	"github.com/depeter/couchosd/internal/raster"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{`show 23 100 "Test Title (2014)"`, Command{Kind: Show, Played: 23, Duration: 100, Title: "Test Title (2014)"}},
		{`show 23 100 Test Title`, Command{Kind: Show, Played: 23, Duration: 100, Title: "Test Title"}},
		{`show 10 100 Episode #3`, Command{Kind: Show, Played: 10, Duration: 100, Title: "Episode #3"}},
		{`show 10 100 "Episode #3"`, Command{Kind: Show, Played: 10, Duration: 100, Title: "Episode #3"}},
		{`show 10 100 Bob's Burgers`, Command{Kind: Show, Played: 10, Duration: 100, Title: "Bob's Burgers"}},
		{"show\t5  60   Two  Spaces ", Command{Kind: Show, Played: 5, Duration: 60, Title: "Two  Spaces"}},
		{`SHOW 0 0`, Command{Kind: Show}},
		{`  hide  `, Command{Kind: Hide}},
	}
	for _, tt := range tests {
		got, err := Parse(tt.line)
		require.NoError(t, err, tt.line)
		assert.Equal(t, tt.want, got, tt.line)
	}
}

func TestParseErrors(t *testing.T) {
	for _, line := range []string{"", "   ", "# comment"} {
		_, err := Parse(line)
		assert.ErrorIs(t, err, ErrEmpty, line)
	}

	_, err := Parse("seek 10")
	assert.ErrorIs(t, err, ErrUnknownCommand)

	for _, line := range []string{"show", "show 1", "show x 10", "show 1 y", "hide now", `show 1 2 "open`} {
		_, err := Parse(line)
		assert.Error(t, err, line)
	}
}

func TestServe(t *testing.T) {
	overlay := osd.New(raster.New(320, 240, nil))
	d := osd.NewDispatcher(overlay, 8, nil)
	input := strings.Join([]string{
		"# demo",
		`show 10 100 "First"`,
		"bogus",
		"hide",
		`show 20 100 "Second"`,
	}, "\n")

	require.NoError(t, Serve(context.Background(), strings.NewReader(input), d, zap.NewNop().Sugar()))
	assert.Equal(t, 3, d.Step())
	assert.True(t, overlay.Shown())
	assert.Equal(t, "Second", overlay.State().Title)
	assert.Equal(t, 20, overlay.State().Played)
}
