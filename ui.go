package main

import (
	"errors"
	"image"
	"image/color"
	"log"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"

	"git.sr.ht/~whereswaldon/chartkit/backend"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

// UI is responsible for holding the state of and drawing the top-level UI.
type UI struct {
	ws   backend.WindowState
	expl *explorer.Explorer
	win  *app.Window

	view      *ChartView
	loaded    bool
	openBtn   widget.Clickable
	loadErr   string
	lastTitle string

	th            *material.Theme
	sessionStream *stream.Stream[backend.Session]
	session       backend.Session
}

func NewUI(ws backend.WindowState, expl *explorer.Explorer, win *app.Window) *UI {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	return &UI{
		ws:            ws,
		th:            th,
		expl:          expl,
		win:           win,
		view:          NewChartView(),
		sessionStream: stream.New(ws.Controller, ws.Bundle.Datasource.Stream),
	}
}

// Update the state of the UI from the latest session and widget events.
func (ui *UI) Update(gtx C) {
	if session, ok := ui.sessionStream.ReadNew(gtx); ok {
		ui.session = session
		ui.applySession(session)
	}
	if ui.openBtn.Clicked(gtx) {
		go func() {
			if _, err := ui.ws.Bundle.Datasource.LoadFromFile(ui.expl); err != nil && !errors.Is(err, explorer.ErrUserDecline) {
				log.Printf("failed opening chart: %v", err)
			}
		}()
	}
}

func (ui *UI) applySession(session backend.Session) {
	if session.Err != nil {
		ui.loadErr = session.Err.Error()
		return
	}
	if session.Document == nil {
		return
	}
	if err := ui.view.SetDocument(session.Document); err != nil {
		ui.loadErr = err.Error()
		return
	}
	ui.loaded = true
	ui.loadErr = ""
	if title := session.Document.Title; title != ui.lastTitle {
		ui.lastTitle = title
		ui.win.Option(app.Title("chartkit - " + title))
	}
}

func (ui *UI) layoutError(gtx C) D {
	if len(ui.loadErr) == 0 {
		return D{}
	}
	l := material.Body1(ui.th, ui.loadErr)
	l.Color = color.NRGBA{R: 150, A: 255}
	return l.Layout(gtx)
}

func (ui *UI) layoutMainArea(gtx C) D {
	return layout.Flex{
		Axis: layout.Vertical,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return layout.UniformInset(4).Layout(gtx, func(gtx C) D {
				return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
					layout.Flexed(1, func(gtx C) D {
						l := material.H6(ui.th, ui.lastTitle)
						l.MaxLines = 1
						return l.Layout(gtx)
					}),
					layout.Rigid(func(gtx C) D {
						return material.Button(ui.th, &ui.openBtn, "Open").Layout(gtx)
					}),
				)
			})
		}),
		layout.Rigid(ui.layoutError),
		layout.Flexed(1, func(gtx C) D {
			return ui.view.Layout(gtx, ui.th)
		}),
	)
}

func (ui *UI) layoutStartScreen(gtx C) D {
	l := material.Body1(ui.th, "No chart loaded.")
	return layout.Flex{
		Axis:      layout.Vertical,
		Alignment: layout.Middle,
		Spacing:   layout.SpaceAround,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return l.Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Button(ui.th, &ui.openBtn, "Open Chart or Table").Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return ui.layoutError(gtx)
		}),
	)
}

// Layout the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	if ui.loaded {
		return ui.layoutMainArea(gtx)
	}
	return ui.layoutStartScreen(gtx)
}
