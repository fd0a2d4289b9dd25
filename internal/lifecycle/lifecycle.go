// Package lifecycle вычисляет производные значения прогресса отслеживаемого бонуса.
//
// Все функции чистые: неизвестный статус или отсутствующие данные дают безопасное
// значение по умолчанию вместо ошибки.
package lifecycle

import (
	"github.com/mmeshcher/bonus-tracker/internal/model"
)

const (
	// DirectDepositGraceDays задаёт срок выполнения прямого депозита после открытия счёта.
	DirectDepositGraceDays = 30
	// BonusPayoutDays задаёт ожидаемый срок выплаты после выполнения условий.
	BonusPayoutDays = 60
)

// UnknownStatusStep возвращается NextStep для нераспознанного статуса.
const UnknownStatusStep = "Unknown status"

// Неравномерная шкала: самое долгое ожидание приходится на выполнение условий.
var progress = map[model.BonusStatus]int{
	model.StatusPlanned:         0,
	model.StatusApplied:         20,
	model.StatusAccountOpened:   40,
	model.StatusRequirementsMet: 80,
	model.StatusBonusReceived:   90,
	model.StatusCompleted:       100,
	model.StatusFailed:          0,
}

var rank = map[model.BonusStatus]int{
	model.StatusPlanned:         0,
	model.StatusApplied:         1,
	model.StatusAccountOpened:   2,
	model.StatusRequirementsMet: 3,
	model.StatusBonusReceived:   4,
	model.StatusCompleted:       5,
}

var labels = map[model.BonusStatus]string{
	model.StatusPlanned:         "Planned",
	model.StatusApplied:         "Applied",
	model.StatusAccountOpened:   "Account Opened",
	model.StatusRequirementsMet: "Requirements Met",
	model.StatusBonusReceived:   "Bonus Received",
	model.StatusCompleted:       "Completed",
	model.StatusFailed:          "Failed",
}

var colors = map[model.BonusStatus]string{
	model.StatusPlanned:         "gray",
	model.StatusApplied:         "blue",
	model.StatusAccountOpened:   "indigo",
	model.StatusRequirementsMet: "purple",
	model.StatusBonusReceived:   "green",
	model.StatusCompleted:       "green",
	model.StatusFailed:          "red",
}

// Progress возвращает процент прогресса для статуса; неизвестный статус даёт 0.
func Progress(status model.BonusStatus) int {
	return progress[status]
}

// Rank возвращает позицию статуса в прямом порядке и false для failed и неизвестных значений.
func Rank(status model.BonusStatus) (int, bool) {
	r, ok := rank[status]
	return r, ok
}

// IsKnown сообщает, входит ли статус в фиксированный набор.
func IsKnown(status model.BonusStatus) bool {
	_, ok := labels[status]
	return ok
}

// ParseStatus преобразует строку в статус.
func ParseStatus(s string) (model.BonusStatus, bool) {
	status := model.BonusStatus(s)
	return status, IsKnown(status)
}

// IsTerminal сообщает, завершён ли жизненный цикл бонуса.
func IsTerminal(status model.BonusStatus) bool {
	return status == model.StatusCompleted || status == model.StatusFailed
}

// IsPending сообщает, находится ли бонус в работе: активен и не завершён.
func IsPending(tb model.TrackedBonus) bool {
	return tb.IsActive && !IsTerminal(tb.Status)
}

// Label возвращает отображаемое название статуса.
func Label(status model.BonusStatus) string {
	if l, ok := labels[status]; ok {
		return l
	}
	return string(status)
}

// Color возвращает цвет бейджа статуса.
func Color(status model.BonusStatus) string {
	if c, ok := colors[status]; ok {
		return c
	}
	return "gray"
}

func requiresDirectDeposit(b *model.Bonus) bool {
	return b != nil && b.DirectDepositRequired
}

// NextStep возвращает инструкцию для следующего шага.
func NextStep(tb model.TrackedBonus, b *model.Bonus) string {
	switch tb.Status {
	case model.StatusPlanned:
		return "Apply for account"
	case model.StatusApplied:
		return "Wait for account opening"
	case model.StatusAccountOpened:
		if requiresDirectDeposit(b) {
			return "Complete direct deposit"
		}
		return "Complete requirements"
	case model.StatusRequirementsMet:
		return "Wait for bonus"
	case model.StatusBonusReceived:
		return "Wait for holding period to end"
	case model.StatusCompleted:
		return "Bonus completed"
	case model.StatusFailed:
		return "Bonus failed"
	default:
		return UnknownStatusStep
	}
}

func reached(current, milestone model.BonusStatus) bool {
	cur, ok := Rank(current)
	if !ok {
		return false
	}
	return cur >= rank[milestone]
}

// Checklist строит упорядоченный список вех.
// Пункт прямого депозита присутствует только если бонус его требует и отмечается по флагу
// direct_deposit_complete независимо от статуса.
func Checklist(tb model.TrackedBonus, b *model.Bonus) []model.Milestone {
	list := make([]model.Milestone, 0, 5)

	list = append(list,
		model.Milestone{
			Label:    "Applied",
			Complete: reached(tb.Status, model.StatusApplied),
			Date:     tb.ApplicationDate,
		},
		model.Milestone{
			Label:    "Account Opened",
			Complete: reached(tb.Status, model.StatusAccountOpened),
			Date:     tb.AccountOpenDate,
		},
	)

	if requiresDirectDeposit(b) {
		list = append(list, model.Milestone{
			Label:    "Direct Deposit Complete",
			Complete: tb.DirectDepositComplete,
			Date:     tb.DirectDepositDate,
		})
	}

	list = append(list,
		model.Milestone{
			Label:    "Bonus Received",
			Complete: reached(tb.Status, model.StatusBonusReceived),
			Date:     tb.BonusReceivedDate,
		},
		model.Milestone{
			Label:    "Holding Period Complete",
			Complete: reached(tb.Status, model.StatusCompleted),
			Date:     tb.CompletionDate,
		},
	)

	return list
}

// DueDate возвращает срок следующего действия или nil, если срока нет.
func DueDate(tb model.TrackedBonus, b *model.Bonus, today model.Date) *model.Date {
	switch tb.Status {
	case model.StatusAccountOpened:
		if !requiresDirectDeposit(b) || tb.AccountOpenDate == nil {
			return nil
		}
		return tb.AccountOpenDate.AddDays(DirectDepositGraceDays).Ptr()
	case model.StatusRequirementsMet:
		return today.AddDays(BonusPayoutDays).Ptr()
	default:
		return nil
	}
}

// View дополняет отслеживаемый бонус производными значениями.
func View(tb model.TrackedBonus, b *model.Bonus, bank *model.Bank, today model.Date) model.TrackedBonusView {
	return model.TrackedBonusView{
		TrackedBonus: tb,
		Bonus:        b,
		Bank:         bank,
		StatusLabel:  Label(tb.Status),
		Progress:     Progress(tb.Status),
		NextStep:     NextStep(tb, b),
		Checklist:    Checklist(tb, b),
		DueDate:      DueDate(tb, b, today),
	}
}
