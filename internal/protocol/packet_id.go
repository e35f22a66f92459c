package protocol

// Packet ids for the single protocol version this client supports. Only the
// ids named in the interface spec are listed; everything else in play state
// is looked up in the dispatch table and, if absent, logged and ignored.
const (
	// handshaking, client→server
	C2SHandshake = 0x00

	// login, client→server
	C2SLoginStart        = 0x00
	C2SLoginAcknowledged = 0x03

	// login, server→client
	S2CLoginSuccess   = 0x02
	S2CSetCompression = 0x03

	// configuration, client→server
	C2SClientInformation     = 0x00
	C2SCookieResponse        = 0x01
	C2SPluginMessageConf     = 0x02
	C2SAcknowledgeFinishConf = 0x03
	C2SKnownPacks            = 0x07
	C2SResourcePackResponse  = 0x06

	// configuration, server→client
	S2CFinishConfiguration = 0x03
	S2CStartConfiguration  = 0x0F

	// play, client→server
	C2SConfirmTeleport       = 0x00
	C2SChatCommand           = 0x04
	C2SChatMessage           = 0x06
	C2SClientStatus          = 0x08
	C2SChunkBatchReceived    = 0x0A
	C2SKeepAliveResponse     = 0x1B
	C2SSetPlayerPosition     = 0x1D
	C2SSetPlayerPositionRot  = 0x1E
	C2SSetPlayerRotation     = 0x1F
	C2SPongResponse          = 0x2C

	// play, server→client
	S2CLogin                    = 0x2C
	S2CChunkBatchStart           = 0x0D
	S2CChunkBatchFinished        = 0x0E
	S2CChunkData                 = 0x27
	S2CDisconnectPlay            = 0x1D
	S2CEntityAnimation            = 0x03
	S2CSpawnEntity               = 0x01
	S2CKeepAlive                 = 0x26
	S2CPing                      = 0x38
	S2CUpdateEntityPosition      = 0x2F
	S2CUpdateEntityPositionRot   = 0x30
	S2CUpdateEntityRotation      = 0x31
	S2CTeleportEntity            = 0x1E
	S2CRemoveEntities            = 0x47
	S2CSetHealth                 = 0x62
	S2CSynchronizePlayerPosition = 0x42
	S2CPlayerChatMessage         = 0x3A
	S2CSystemChatMessage         = 0x73
	S2CUpdateTime                = 0x6D
	S2CPlayerInfoUpdate          = 0x40
	S2CPlayerInfoRemove          = 0x41
	S2CSetContainerContent       = 0x13
	S2CSetCenterChunk            = 0x57
	S2CForgetLevelChunk          = 0x21
)
