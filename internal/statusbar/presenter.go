package statusbar

import (
	"context"

	"github.com/dshills/projectname/internal/config"
	"github.com/dshills/projectname/internal/resolver"
)

// NameResolver computes the project name. *resolver.Resolver satisfies it.
type NameResolver interface {
	Resolve(ctx context.Context, done func(resolver.Name))
}

// Dispatcher schedules fn. The Controller passes its event loop so
// completions run there.
type Dispatcher func(fn func())

// Presenter keeps a Widget in sync with the resolved project name.
type Presenter struct {
	config   config.Reader
	resolver NameResolver
	widget   Widget
	dispatch Dispatcher
}

// NewPresenter creates a presenter. A nil dispatch applies results on the
// goroutine that delivers them.
func NewPresenter(cfg config.Reader, r NameResolver, w Widget, dispatch Dispatcher) *Presenter {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &Presenter{config: cfg, resolver: r, widget: w, dispatch: dispatch}
}

// Refresh resolves the name and updates the widget when the result arrives.
// Overlapping refreshes are not serialized: the last result applied wins.
func (p *Presenter) Refresh(ctx context.Context) {
	p.resolver.Resolve(ctx, func(name resolver.Name) {
		p.dispatch(func() { p.Apply(name) })
	})
}

// Apply updates the widget for name using the current settings.
func (p *Presenter) Apply(name resolver.Name) {
	if !name.Displayable() {
		p.widget.SetText("")
		p.widget.Hide()
		return
	}

	p.widget.SetText(Format(config.Read(p.config), name.Value))
	p.widget.Show()
}
