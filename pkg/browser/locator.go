package browser

import (
	"fmt"
	"strings"
)

// XPath construction for the locator strategies in the step table:
// visible text, label association, and role+name. Explicit CSS
// selectors bypass these and go through querySelector directly.

// TextExpr matches the innermost elements whose own text nodes contain
// the given string. Matching on text() rather than the subtree keeps
// container elements (body, div wrappers) from shadowing the target.
func TextExpr(text string) string {
	q := XPathLiteral(text)
	return fmt.Sprintf("//*[text()[contains(normalize-space(.), %s)]]", q)
}

// ButtonExpr matches elements with the accessible role "button" and an
// accessible name containing name: button elements, submit/button
// inputs, and explicit role=button.
func ButtonExpr(name string) string {
	q := XPathLiteral(name)
	return fmt.Sprintf(
		"//button[contains(normalize-space(.), %[1]s)]"+
			" | //input[(@type='submit' or @type='button') and contains(@value, %[1]s)]"+
			" | //*[@role='button' and contains(normalize-space(.), %[1]s)]", q)
}

// LinkExpr matches elements with the accessible role "link" and an
// accessible name containing name.
func LinkExpr(name string) string {
	q := XPathLiteral(name)
	return fmt.Sprintf(
		"//a[contains(normalize-space(.), %[1]s)]"+
			" | //*[@role='link' and contains(normalize-space(.), %[1]s)]", q)
}

// RoleExpr dispatches to the expression for a supported accessible
// role. Unsupported roles return an expression matching nothing, so
// the lookup fails as a not-found rather than an engine fault.
func RoleExpr(role, name string) string {
	switch role {
	case "button":
		return ButtonExpr(name)
	case "link":
		return LinkExpr(name)
	default:
		return "//*[false()]"
	}
}

// LabelControlExpr matches the form control associated with a label:
// either through the label's for attribute or by nesting.
func LabelControlExpr(label string) string {
	q := XPathLiteral(label)
	var parts []string
	for _, tag := range []string{"input", "textarea", "select"} {
		parts = append(parts,
			fmt.Sprintf("//%s[@id = //label[contains(normalize-space(.), %s)]/@for]", tag, q),
			fmt.Sprintf("//label[contains(normalize-space(.), %s)]//%s", q, tag),
		)
	}
	return strings.Join(parts, " | ")
}

// XPathLiteral quotes s as an XPath string literal. XPath 1.0 has no
// escaping inside literals, so strings holding both quote characters
// must be assembled with concat().
func XPathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}

	// Mixed quotes: split on single quotes and rejoin with concat().
	var parts []string
	for i, chunk := range strings.Split(s, "'") {
		if i > 0 {
			parts = append(parts, `"'"`)
		}
		if chunk != "" {
			parts = append(parts, "'"+chunk+"'")
		}
	}
	return "concat(" + strings.Join(parts, ", ") + ")"
}
