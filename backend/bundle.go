package backend

import (
	"context"

	"gioui.org/app"
	"git.sr.ht/~gioverse/skel/stream"
)

type WindowState struct {
	Bundle
	Controller *stream.Controller
}

func NewWindowState(ctx context.Context, bundle Bundle, win *app.Window) WindowState {
	return WindowState{
		Bundle:     bundle,
		Controller: stream.NewController(ctx, win.Invalidate),
	}
}

// Bundle holds the backend services shared by all windows.
type Bundle struct {
	Datasource *Datasource
}

func NewBundle(mutator *stream.Mutator, opts LoadOptions) Bundle {
	return Bundle{
		Datasource: NewDatasource(mutator, opts),
	}
}
