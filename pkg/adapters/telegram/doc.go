/*
Package telegram is the Telegram bot transport of the portrait engine.

It turns updates into engine events ("/start" and the inline keyboard
callbacks) and renders views as messages: questions with media go out as
photos, other screens edit the message that carried the pressed button and
fall back to a new message when editing fails.

	api, _ := tgbotapi.NewBotAPI(token)
	bot := telegram.New(api, session.NewManager(engine), telegram.WithTexts(engine.Texts()))
	err := bot.Run(ctx, api.GetUpdatesChan(tgbotapi.NewUpdate(0)))
*/
package telegram
