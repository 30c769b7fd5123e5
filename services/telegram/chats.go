package telegram

import (
	"fmt"
	"os"
	"strconv"

	"github.com/orsinium-labs/enum"
)

type Chat enum.Member[int64]

// The telegram chats are defined as environment variables
// Due to the fact that all environment variables are strings, we need to convert them to int64
// That is done in the init() function below
//
// !!!! You need to update that too !!!!
var (
	ChatProductions = Chat{Value: 0}
	ChatAlerts      = Chat{Value: 0}

	Chats = enum.New(ChatProductions, ChatAlerts)
)

func init() {
	chat, err := strconv.ParseInt(os.Getenv("TELEGRAM_CHAT_ID_PRODUCTIONS"), 10, 64)
	if err != nil {
		fmt.Printf("Error parsing TELEGRAM_CHAT_ID_PRODUCTIONS: %v\n", err)
	}
	ChatProductions.Value = chat

	chat, err = strconv.ParseInt(os.Getenv("TELEGRAM_CHAT_ID_ALERTS"), 10, 64)
	if err != nil {
		fmt.Printf("Error parsing TELEGRAM_CHAT_ID_ALERTS: %v\n", err)
	}
	ChatAlerts.Value = chat
}
