/*
Package dsl provides a fluent builder for questionnaire graphs.

It allows developers to define branches, questions and choices in Go instead of
a CSV or YAML file. This is particularly useful for unit testing and for
embedding small questionnaires.

Example usage:

	b := dsl.New()

	b.Question(1, 1, "How do you like to work?").
		Choice(1, "In a team", dsl.To(2), dsl.Portrait("team player")).
		Choice(2, "Alone", dsl.To(2), dsl.Portrait("soloist"))

	b.Question(1, 2, "Pick a habit").
		Final().
		Choice(1, "Reading", dsl.Advice("Read daily. Twenty pages a day."))

	graph, err := b.Graph()
*/
package dsl
