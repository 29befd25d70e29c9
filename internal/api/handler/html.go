package handler

import (
	"fmt"
	"html/template"
)

// page wraps body in the minimal HTML shell shared by every browser-facing
// route. No template engine: the pages are presentation glue around the auth
// core and stay as plain strings.
func page(title, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>%s</title></head>
<body>
%s
</body>
</html>`, template.HTMLEscapeString(title), body)
}

// esc escapes user-supplied values before they are interpolated into HTML.
func esc(s string) string {
	return template.HTMLEscapeString(s)
}
