// Package file loads questionnaire data from disk: question graphs from CSV
// or YAML, the texts catalogue from CSV, and question images from a directory.
package file
