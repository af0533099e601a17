package dsl

import "github.com/aretw0/portrait/pkg/domain"

// QuestionBuilder provides a fluent API for configuring a question.
type QuestionBuilder struct {
	question domain.Question
	builder  *Builder
}

// Final marks the question as terminal: any answer finishes the branch.
func (q *QuestionBuilder) Final() *QuestionBuilder {
	q.question.IsFinal = true
	return q
}

// Media attaches a media reference.
func (q *QuestionBuilder) Media(ref string) *QuestionBuilder {
	q.question.MediaRef = ref
	return q
}

// Choice appends an option. Options keep declaration order.
func (q *QuestionBuilder) Choice(choice int, label string, opts ...ChoiceOption) *QuestionBuilder {
	opt := domain.Option{
		Choice: choice,
		Label:  label,
		Emoji:  domain.DefaultEmoji,
	}
	for _, fn := range opts {
		fn(&opt)
	}
	q.question.Options = append(q.question.Options, opt)
	return q
}

// Question switches back to the graph builder to declare another question.
func (q *QuestionBuilder) Question(branch, id int, text string) *QuestionBuilder {
	return q.builder.Question(branch, id, text)
}

// ChoiceOption configures an option.
type ChoiceOption func(*domain.Option)

// To sets the next question id.
func To(id int) ChoiceOption {
	return func(o *domain.Option) { o.NextQ = domain.Next(id) }
}

// Emoji overrides the default emoji.
func Emoji(e string) ChoiceOption {
	return func(o *domain.Option) { o.Emoji = e }
}

// Confirm sets the acknowledgement shown before the next question.
func Confirm(text string) ChoiceOption {
	return func(o *domain.Option) { o.Confirmation = text }
}

// Portrait sets the portrait tag.
func Portrait(tag string) ChoiceOption {
	return func(o *domain.Option) { o.PortraitTag = tag }
}

// Advice sets the advice text.
func Advice(text string) ChoiceOption {
	return func(o *domain.Option) { o.Advice = text }
}

// Describe sets the portrait description.
func Describe(text string) ChoiceOption {
	return func(o *domain.Option) { o.Description = text }
}
