// Package dto holds the row shapes of the tabular sources and decodes
// header-keyed records into them.
package dto
