// Package render binds recipe fields into BitBake recipe templates.
//
// # Templates
//
// A template is plain text with {field} placeholders, where field is a
// lowercase identifier such as {name} or {src_uri}. BitBake's own ${VAR}
// references are left untouched, so a template can say
//
//	S = "${WORKDIR}/git"
//	include {name}-${PV}.inc
//
// [Default] returns the built-in template. Custom templates are loaded
// with [LoadTemplate]; the output extension comes from the file name, so
// recipe.bb.tmpl and recipe.bb both produce <name>_<version>.bb.
//
// # Binding
//
// [Template.Execute] refuses to render when a placeholder has no value in
// [Fields] and reports the names in a [*MissingFieldError]. [RenderAll]
// renders every template up front so a bad template never leaves some
// recipes written and others not.
package render
