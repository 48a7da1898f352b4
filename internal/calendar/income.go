package calendar

import "github.com/tutor-crm/backend/internal/model"

// Period отчётный период снимка дохода
type Period struct {
	Start string `json:"start"` // YYYY-MM-DD
	End   string `json:"end"`   // YYYY-MM-DD
}

// StatusTally счётчик событий одного статуса
type StatusTally struct {
	Count int `json:"count"`
	Total int `json:"total"`
}

// IncomeBreakdown разбивка событий по типам и статусам.
// В received попадают только paid и paided-closed, остальные
// статусы считаются для наглядности.
type IncomeBreakdown struct {
	Booked       StatusTally `json:"booked"`
	Paid         StatusTally `json:"paid"`
	PaidClosed   StatusTally `json:"paidedClosed"`
	Pending      StatusTally `json:"pending"`
	NoPaidClosed StatusTally `json:"nopaidedClosed"`
	Cancelled    StatusTally `json:"cancelled"`
}

// IncomeSnapshot снимок дохода за период. Пересчитывается целиком
// при каждом вызове, между вызовами ничего не копится.
type IncomeSnapshot struct {
	Planned   int             `json:"planned"`
	Received  int             `json:"received"`
	Total     int             `json:"total"`
	Remaining int             `json:"remaining"`
	Period    Period          `json:"period"`
	Breakdown IncomeBreakdown `json:"breakdown"`
}

// CalculateIncome сводит события календаря в снимок дохода.
// Брони дают planned (цена в price), оплаченные уроки — received
// (цена в price_paid). Remaining знаковый: может уйти в минус,
// если получено больше запланированного.
func CalculateIncome(events []model.CalendarEvent, period Period) IncomeSnapshot {
	snapshot := IncomeSnapshot{Period: period}

	for _, event := range events {
		switch event.Extended.Type {
		case model.EventTypeBooked:
			price := event.Extended.Price
			snapshot.Planned += price
			snapshot.Breakdown.Booked.Count++
			snapshot.Breakdown.Booked.Total += price

		case model.EventTypeLesson:
			price := event.Extended.PricePaid

			switch event.Extended.Status {
			case model.StatusSlugPaid:
				snapshot.Received += price
				tally(&snapshot.Breakdown.Paid, price)
			case model.StatusSlugPaidClosed:
				snapshot.Received += price
				tally(&snapshot.Breakdown.PaidClosed, price)
			case model.StatusSlugPending:
				tally(&snapshot.Breakdown.Pending, price)
			case model.StatusSlugNoPaidClosed:
				tally(&snapshot.Breakdown.NoPaidClosed, price)
			case model.StatusSlugCancelled:
				tally(&snapshot.Breakdown.Cancelled, price)
			}
		}
	}

	snapshot.Total = snapshot.Planned + snapshot.Received
	snapshot.Remaining = snapshot.Planned - snapshot.Received

	return snapshot
}

func tally(t *StatusTally, price int) {
	t.Count++
	t.Total += price
}
