package dto

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Column headers of the questions table.
const (
	ColBranch       = "Ветка"
	ColQuestion     = "Номер вопроса"
	ColText         = "Вводная"
	ColFinal        = "Финал"
	ColChoice       = "Выбор пользователя"
	ColLabel        = "Вариант вопроса"
	ColNext         = "Следующий вопрос"
	ColConfirmation = "Подтверждение выбора"
	ColEmoji        = "Эмодзи"
	ColPortrait     = "Портрет"
	ColAdvice       = "Совет"
	ColDescription  = "Описание портрета"
)

// QuestionRow is one line of the questions table.
// Numeric columns stay textual so that blank and malformed cells can be told apart.
type QuestionRow struct {
	Branch       string `mapstructure:"Ветка"`
	Question     string `mapstructure:"Номер вопроса"`
	Text         string `mapstructure:"Вводная"`
	Final        string `mapstructure:"Финал"`
	Choice       string `mapstructure:"Выбор пользователя"`
	Label        string `mapstructure:"Вариант вопроса"`
	Next         string `mapstructure:"Следующий вопрос"`
	Confirmation string `mapstructure:"Подтверждение выбора"`
	Emoji        string `mapstructure:"Эмодзи"`
	Portrait     string `mapstructure:"Портрет"`
	Advice       string `mapstructure:"Совет"`
	Description  string `mapstructure:"Описание портрета"`
}

// TextRow is one line of the texts catalogue.
type TextRow struct {
	Key  string `mapstructure:"key"`
	Text string `mapstructure:"text"`
}

// Decode maps a header-keyed record onto out. Unknown columns are ignored.
func Decode(record map[string]string, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(record); err != nil {
		return fmt.Errorf("failed to decode row: %w", err)
	}
	return nil
}
