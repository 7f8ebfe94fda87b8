package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/cache"
	domain "github.com/JeanLimaa/minimal-agendefacil-backend/internal/domain/appointment"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/timeutil"
)

const defaultSlotStepMinutes = 30

type GetAvailability struct {
	repo  domain.Repository
	cache *cache.Cache
	log   *zap.Logger
}

func NewGetAvailability(
	repo domain.Repository,
	c *cache.Cache,
	log *zap.Logger,
) *GetAvailability {
	return &GetAvailability{
		repo:  repo,
		cache: c,
		log:   log,
	}
}

// Execute deriva os horários livres do dia: janela de expediente da
// empresa interceptada com a grade de slots, menos os intervalos já
// ocupados por agendamentos e bloqueios ativos.
//
// O passo da grade é o intervalo entre atendimentos configurado na
// empresa; a duração de cada slot é a soma dos serviços pedidos (ou
// um passo, quando nenhum serviço é informado).
func (uc *GetAvailability) Execute(
	ctx context.Context,
	companyID uint,
	date time.Time,
	serviceIDs []uint,
) ([]string, error) {

	key := cache.AvailabilityKey(companyID, date, serviceIDs)
	if times, ok := uc.cache.GetAvailableTimes(ctx, key); ok {
		return times, nil
	}

	company, err := uc.repo.GetCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	wh, err := uc.repo.GetWorkingHour(ctx, companyID, int(date.Weekday()))
	if err != nil {
		return nil, err
	}
	if wh == nil {
		// dia sem expediente
		return []string{}, nil
	}

	startMin, err := timeutil.ParseTimeToMinutes(wh.StartTime)
	if err != nil {
		return nil, err
	}
	endMin, err := timeutil.ParseTimeToMinutes(wh.EndTime)
	if err != nil {
		return nil, err
	}

	step := company.IntervalBetweenAppointments
	if step <= 0 {
		step = defaultSlotStepMinutes
	}

	slotMinutes := step
	if len(serviceIDs) > 0 {
		if err := validateServiceIDs(serviceIDs); err != nil {
			return nil, err
		}

		services, err := uc.repo.ListActiveServices(ctx, companyID, serviceIDs)
		if err != nil {
			return nil, err
		}

		quote, err := domain.BuildQuote(serviceIDs, services, 0, domain.RoleClient)
		if err != nil {
			return nil, err
		}
		slotMinutes = quote.DurationMin
	}

	loc := date.Location()
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc).
		Add(time.Duration(startMin) * time.Minute)
	dayEnd := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc).
		Add(time.Duration(endMin) * time.Minute)

	busy, err := uc.repo.ListActiveAppointmentsBetween(ctx, companyID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	slotDur := time.Duration(slotMinutes) * time.Minute
	stepDur := time.Duration(step) * time.Minute

	times := []string{}
	for cur := dayStart; !cur.Add(slotDur).After(dayEnd); cur = cur.Add(stepDur) {
		slotStart := cur
		slotEnd := cur.Add(slotDur)

		conflict := false
		for i := range busy {
			if domain.Overlaps(slotStart, slotEnd, busy[i].Date, busy[i].End()) {
				conflict = true
				break
			}
		}

		if !conflict {
			times = append(times, slotStart.Format("15:04"))
		}
	}

	uc.cache.SetAvailableTimes(ctx, key, times)

	return times, nil
}
