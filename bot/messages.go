package bot

// User-facing reply texts. The bot speaks Italian, as its group does.
const (
	msgStart = "Ciao! Sono il bot della classifica. Usa /ap <ID_utente_o_username> <coin> e /classifica per vedere i risultati. Tutti i comandi funzionano solo qui in privato."

	msgNotAuthorized = "Mi dispiace, questo comando può essere usato solo dagli amministratori autorizzati e solo in chat privata."

	msgUnknownCommand = "Comando sconosciuto."

	msgApUsage        = "Uso corretto: /ap <ID_utente_o_username> <coin>"
	msgApInvalidCoins = "Valore di coin non valido. Deve essere un numero intero (può essere negativo per rimuovere coin)."

	msgLeaderboardEmpty = "La classifica è vuota o nessuno ha ancora coin! Inizia ad aggiungerli."

	msgResetDone = "Classifica resettata con successo!"

	msgExportDone = "Utenti conosciuti esportati. Controlla i log della console per il JSON completo."
)
