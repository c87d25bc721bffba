package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// ToggleProps configures Toggle. The widget never changes IsOn itself.
type ToggleProps struct {
	ID   string
	IsOn bool
	// OnChange is the endpoint every change event is forwarded to.
	OnChange string
}

// Toggle renders a controlled switch bound to props.IsOn. The browser posts
// the checkbox state after each change to props.OnChange; whatever the owner
// decides comes back as the next render.
func Toggle(props ToggleProps, label templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := NewWriter(w)
		h.Raw(`<div class="form-check form-switch" data-toggle`)
		h.Attr("data-on-change", props.OnChange)
		h.Raw(`><input class="toggle form-check-input" type="checkbox"`)
		h.Attr("id", props.ID)
		h.Attr("name", "on")
		if props.IsOn {
			h.Raw(" checked")
		}
		h.Raw(`><label class="form-check-label"`)
		h.Attr("for", props.ID)
		h.Raw(">")
		h.Render(ctx, label)
		h.Raw("</label></div>")
		return h.Err()
	})
}
