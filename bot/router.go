package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"classifica/models"
	"classifica/service"

	log "github.com/sirupsen/logrus"
)

// Message is one inbound update, already flattened by the transport
type Message struct {
	SenderID  int64
	Username  string
	FirstName string
	Private   bool
	Text      string
}

// handlerFunc executes one command. A returned error is converted to the
// command's user-facing error reply by Handle; it never escapes the router.
type handlerFunc func(ctx context.Context, msg Message, args string) (string, error)

type command struct {
	handler    handlerFunc
	privileged bool
	// errFormat renders a handler error for the user, with %v for the cause
	errFormat string
}

// Router parses inbound text into commands and dispatches them. Group chatter
// without a leading / is never processed; the sender's profile is refreshed
// before any command logic runs.
type Router struct {
	ledger    service.LedgerService
	guard     *Guard
	formatter *Formatter
	commands  map[string]command
}

// NewRouter creates the command router over the ledger service
func NewRouter(ledger service.LedgerService, guard *Guard, formatter *Formatter) *Router {
	r := &Router{
		ledger:    ledger,
		guard:     guard,
		formatter: formatter,
	}
	r.commands = map[string]command{
		"start": {handler: r.handleStart},
		"ap": {
			handler:    r.handleAddPoints,
			privileged: true,
			errFormat:  "Errore nell'aggiunta/rimozione dei coin: %v",
		},
		"classifica": {
			handler:   r.handleLeaderboard,
			errFormat: "Errore durante il recupero della classifica: %v",
		},
		"resetclassifica": {
			handler:    r.handleReset,
			privileged: true,
			errFormat:  "Errore durante il reset della classifica: %v",
		},
		"exportusers": {
			handler:    r.handleExport,
			privileged: true,
			errFormat:  "Errore durante l'esportazione degli utenti: %v",
		},
	}
	return r
}

// Handle processes one update and returns the reply text, if any
func (r *Router) Handle(ctx context.Context, msg Message) (string, bool) {
	// Keep the directory fresh for any observed sender, group or private,
	// command or not, before anything else happens
	if err := r.ledger.RefreshProfile(ctx, msg.SenderID, msg.Username, msg.FirstName); err != nil {
		log.WithError(err).WithField("userID", msg.SenderID).Error("Failed to refresh sender profile")
	}

	// Chatter without a leading / is never processed as a command
	if !strings.HasPrefix(msg.Text, "/") {
		return "", false
	}

	log.WithFields(log.Fields{
		"userID": msg.SenderID,
		"text":   msg.Text,
	}).Info("Received command")

	name, args := splitCommand(msg.Text)

	cmd, known := r.commands[name]
	if !known {
		if msg.Private {
			return msgUnknownCommand, true
		}
		return "", false
	}

	if cmd.privileged {
		if !msg.Private || !r.guard.IsAuthorized(msg.SenderID) {
			return msgNotAuthorized, true
		}
	} else if !msg.Private {
		// Unprivileged commands work in private chat only, silently
		return "", false
	}

	reply, err := cmd.handler(ctx, msg, args)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"command": name,
			"userID":  msg.SenderID,
		}).Error("Command failed")
		return fmt.Sprintf(cmd.errFormat, err), true
	}
	return reply, true
}

// splitCommand extracts the case-folded command name and the raw argument
// string from "/name args..."
func splitCommand(text string) (string, string) {
	parts := strings.SplitN(text, " ", 2)
	name := strings.ToLower(strings.TrimPrefix(parts[0], "/"))
	if len(parts) > 1 {
		return name, parts[1]
	}
	return name, ""
}

func (r *Router) handleStart(ctx context.Context, msg Message, args string) (string, error) {
	return msgStart, nil
}

// handleAddPoints implements /ap <target> <delta>. The target is either a
// numeric id or a username; a typed username becomes the stored one, a
// numeric id leaves the stored profile untouched.
func (r *Router) handleAddPoints(ctx context.Context, msg Message, args string) (string, error) {
	parts := strings.SplitN(args, " ", 2)
	if args == "" || len(parts) != 2 {
		return msgApUsage, nil
	}
	target := parts[0]

	delta, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return msgApInvalidCoins, nil
	}

	var targetID int64
	var typedUsername string
	if id, err := strconv.ParseInt(target, 10, 64); err == nil {
		targetID = id
	} else {
		typedUsername = models.NormalizeUsername(target)
		targetID, err = r.ledger.ResolveIDByUsername(ctx, target)
		if errors.Is(err, service.ErrAccountNotFound) {
			log.WithField("username", target).Warn("Grant to unknown username")
			return fmt.Sprintf("❌ Username '%s' non trovato nel database. Assicurati che l'utente abbia già interagito con il bot o usa l'ID numerico.", target), nil
		}
		if err != nil {
			return "", err
		}
	}

	account, err := r.ledger.GrantPoints(ctx, targetID, typedUsername, "", delta)
	if err != nil {
		return "", err
	}

	displayName := strconv.FormatInt(targetID, 10)
	if account.Username != "" {
		displayName = "@" + account.Username
	}

	switch {
	case delta > 0:
		return fmt.Sprintf("✅ Aggiunti %d coin all'utente %s. Totale coin aggiornato.", delta, displayName), nil
	case delta < 0:
		return fmt.Sprintf("➖ Rimossi %d coin dall'utente %s. Totale coin aggiornato.", -delta, displayName), nil
	default:
		return fmt.Sprintf("ℹ️ Nessuna modifica ai coin per l'utente %s (valore 0).", displayName), nil
	}
}

func (r *Router) handleLeaderboard(ctx context.Context, msg Message, args string) (string, error) {
	accounts, err := r.ledger.Leaderboard(ctx)
	if err != nil {
		return "", err
	}
	return r.formatter.Render(accounts), nil
}

func (r *Router) handleReset(ctx context.Context, msg Message, args string) (string, error) {
	if err := r.ledger.ResetLeaderboard(ctx, msg.SenderID); err != nil {
		return "", err
	}
	return msgResetDone, nil
}

// handleExport dumps every known account as JSON into the log; the reply just
// points the admin at it.
func (r *Router) handleExport(ctx context.Context, msg Message, args string) (string, error) {
	accounts, err := r.ledger.ExportAccounts(ctx)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(accounts, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize accounts: %w", err)
	}

	log.WithField("count", len(accounts)).Infof("Exported accounts: %s", data)
	return msgExportDone, nil
}
