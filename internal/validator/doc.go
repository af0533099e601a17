// Package validator checks a question graph for broken links, dead ends and
// unreachable questions before it is served.
package validator
