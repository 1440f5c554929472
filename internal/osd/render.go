package osd

// Show draws the OSD for a playback position of played seconds out of
// duration seconds. A zero duration hides the end time and progress bar.
// Every call redraws the whole frame, opening the canvas first if the
// overlay was hidden.
func (o *Overlay) Show(played, duration int, title string) error {
	if duration < 0 {
		duration = 0
	}
	if played < 0 {
		played = 0
	}
	if played > duration {
		played = duration
	}

	if err := o.ensureInitialized(); err != nil {
		return err
	}

	s := &o.state
	s.Played = played
	s.Duration = duration
	s.Title = title

	now := o.now()
	s.TimeNow = ClockTime(now, 0)
	s.TimeEnd, s.PosNow, s.PosEnd = "", "", ""
	if duration > 0 {
		remaining := duration - played
		s.TimeEnd = ClockTime(now, remaining)
		s.PosNow = FormatDuration(played)
		s.PosEnd = FormatDuration(remaining)
	}

	o.draw(s)
	return o.canvas.End()
}

func (o *Overlay) draw(s *State) {
	c := o.canvas
	w := float64(s.Width)
	panelW := w - panelMargin

	c.Begin(s.Width, s.Height)

	c.Fill(colorWhite)
	c.Text(pausedX, pausedY, "PAUSED", o.bold, sizePaused)

	c.Fill(colorBackdrop)
	c.RoundRect(panelX, panelY, panelW, panelH, panelRadius, panelRadius)

	// header: rounded cap on top of a square body
	c.Fill(colorBlack)
	c.RoundRect(panelX, panelY+panelH-headerCapH, panelW, headerCapH, panelRadius, panelRadius)
	c.Rect(panelX, panelY+panelH-(headerH+headerGap), panelW, headerH)

	c.Fill(colorClock)
	c.Text(textInset, headerY, s.TimeNow, o.semibold, sizeClock)
	if s.Duration > 0 {
		c.TextEnd(w-textInset, headerY, s.TimeEnd, o.semibold, sizeClock)
	}

	c.Fill(colorWhite)
	if ct, ok := c.(CenterTexter); ok {
		ct.TextCenter(w/2, headerY, s.Title, o.semibold, sizeTitle)
	} else {
		titleW := c.TextWidth(s.Title, o.semibold, sizeTitle)
		c.Text(w/2-titleW/2, headerY, s.Title, o.semibold, sizeTitle)
	}

	if s.Duration <= 0 {
		return
	}

	track := TrackWidth(s.Width)
	c.Fill(colorTrack)
	c.RoundRect(trackX, trackY, track, trackH, trackRadius, trackRadius)
	c.Fill(colorProgress)
	c.RoundRect(trackX, trackY, track*s.Progress(), trackH, trackRadius, trackRadius)

	c.Fill(colorTextShade)
	c.Text(textInset-shadowOffset, trackY-shadowOffset, s.PosNow, o.semibold, sizePos)
	c.TextEnd(w-textInset-shadowOffset, trackY-shadowOffset, s.PosEnd, o.semibold, sizePos)

	c.Fill(colorWhite)
	c.Text(textInset, trackY, s.PosNow, o.semibold, sizePos)
	c.TextEnd(w-textInset, trackY, s.PosEnd, o.semibold, sizePos)
}
