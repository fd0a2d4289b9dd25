package lifecycle

import (
	"github.com/mmeshcher/bonus-tracker/internal/model"
)

const noteSeparator = "\n\n"

// StatusUpdate описывает ручную смену статуса.
type StatusUpdate struct {
	Status model.BonusStatus `json:"status"`
	Date   model.Date        `json:"date"`
	Note   string            `json:"note"`
}

// ApplyStatus выставляет новый статус и соответствующую ему дату вехи.
// Переход из любого статуса в любой разрешён.
func ApplyStatus(tb *model.TrackedBonus, b *model.Bonus, upd StatusUpdate) {
	tb.Status = upd.Status
	date := upd.Date.Ptr()

	switch upd.Status {
	case model.StatusApplied:
		tb.ApplicationDate = date
	case model.StatusAccountOpened:
		tb.AccountOpenDate = date
	case model.StatusRequirementsMet:
		if requiresDirectDeposit(b) {
			tb.DirectDepositComplete = true
			tb.DirectDepositDate = date
		}
	case model.StatusBonusReceived:
		tb.BonusReceivedDate = date
	case model.StatusCompleted:
		tb.CompletionDate = date
	}

	tb.Notes = AppendNote(tb.Notes, upd.Note)
}

// AppendNote дописывает заметку к предыдущим через пустую строку.
func AppendNote(prev, note string) string {
	if note == "" {
		return prev
	}
	if prev == "" {
		return note
	}
	return prev + noteSeparator + note
}
