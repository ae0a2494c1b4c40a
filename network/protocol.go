package network

// Message IDs. 1xx are client-to-server, 3xx are server-to-client.
const (
	MsgTypeHeartbeat = 1

	MsgTypeJoin        = 101
	MsgTypeDraw        = 102
	MsgTypeClearCanvas = 103
	MsgTypeChat        = 104
	MsgTypeGuess       = 105

	MsgTypePlayerListUpdated     = 301
	MsgTypeWaitingForPlayers     = 302
	MsgTypeMatchStarted          = 303
	MsgTypeRoundStarted          = 304
	MsgTypeSecretWord            = 305
	MsgTypeCanvasCleared         = 306
	MsgTypeStrokeBroadcast       = 307
	MsgTypeRoundTick             = 308
	MsgTypeMatchTick             = 309
	MsgTypeGuessAccepted         = 310
	MsgTypeScoreUpdated          = 311
	MsgTypeMatchEnded            = 312
	MsgTypeMatchPaused           = 313
	MsgTypeRoundAdvanceFailed    = 314
	MsgTypeDirectoryLookupFailed = 315
	MsgTypeChatMessage           = 316
	MsgTypeSystemMessage         = 317
)
