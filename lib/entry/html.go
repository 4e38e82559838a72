package entry

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Document returns the standalone HTML document for a widget as a templ
// component. The document contains exactly one mount element and one module
// script pointing at scriptSrc.
//
// The widget name is HTML-escaped before interpolation into the title;
// filenames are under project-author control, but an unescaped "<" or "&"
// would still produce an invalid document.
func Document(name, scriptSrc string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>`+templ.EscapeString(name)+` Widget</title>
  </head>
  <body>
    <div id="root"></div>
    <script type="module" src="`+scriptSrc+`"></script>
  </body>
</html>
`)
		return err
	})
}

// SynthesizeHTML renders the virtual HTML entry document for a widget. The
// embedded script src is the widget's script entry id; in dev mode the host
// rewrites it to a servable URL, and in production builds the bundler
// replaces it with the hashed output path.
func SynthesizeHTML(name string) (string, error) {
	var buf bytes.Buffer
	if err := Document(name, ScriptEntryID(name)).Render(context.Background(), &buf); err != nil {
		return "", fmt.Errorf("render widget document %q: %w", name, err)
	}
	return buf.String(), nil
}
