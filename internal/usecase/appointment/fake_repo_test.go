package appointment

import (
	"context"
	"errors"
	"sort"
	"time"

	domain "github.com/JeanLimaa/minimal-agendefacil-backend/internal/domain/appointment"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/httperr"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/models"
)

// fakeRepo é um repositório em memória com a mesma semântica do gorm:
// buscas "não achei" devolvem nil, violações de unicidade viram
// conflito e InTransaction desfaz tudo em caso de erro.
type fakeRepo struct {
	companies    map[uint]models.Company
	workingHours map[uint]map[int]models.CompanyWorkingHour
	services     map[uint]models.Service
	clients      map[uint]models.Client
	appointments map[uint]models.Appointment
	links        map[uint][]uint

	nextClientID      uint
	nextServiceID     uint
	nextAppointmentID uint

	// ganchos de falha
	failCreateAppointment error
	failCreateLinks       error

	// onCreateClient, se definido, intercepta o próximo CreateClient
	// (simula corrida de unicidade com outra transação).
	onCreateClient func(*models.Client) error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		companies:         make(map[uint]models.Company),
		workingHours:      make(map[uint]map[int]models.CompanyWorkingHour),
		services:          make(map[uint]models.Service),
		clients:           make(map[uint]models.Client),
		appointments:      make(map[uint]models.Appointment),
		links:             make(map[uint][]uint),
		nextClientID:      1,
		nextServiceID:     1,
		nextAppointmentID: 1,
	}
}

// --------------------------------------------------
// Seeds
// --------------------------------------------------

func (f *fakeRepo) seedCompany(id uint, interval int) {
	f.companies[id] = models.Company{
		ID:                          id,
		Name:                        "Empresa Teste",
		Link:                        "empresa-teste",
		IntervalBetweenAppointments: interval,
	}
}

func (f *fakeRepo) seedWorkingHour(companyID uint, day int, start, end string) {
	if f.workingHours[companyID] == nil {
		f.workingHours[companyID] = make(map[int]models.CompanyWorkingHour)
	}
	f.workingHours[companyID][day] = models.CompanyWorkingHour{
		CompanyID: companyID,
		DayOfWeek: day,
		StartTime: start,
		EndTime:   end,
	}
}

func (f *fakeRepo) seedService(companyID uint, name string, price float64, durationMin int, active bool) uint {
	id := f.nextServiceID
	f.nextServiceID++
	f.services[id] = models.Service{
		ID:          id,
		CompanyID:   companyID,
		Name:        name,
		Price:       price,
		DurationMin: durationMin,
		IsActive:    active,
	}
	return id
}

func (f *fakeRepo) seedClient(companyID uint, name, phone string) uint {
	id := f.nextClientID
	f.nextClientID++
	f.clients[id] = models.Client{
		ID:        id,
		CompanyID: companyID,
		Name:      name,
		Phone:     phone,
	}
	return id
}

// --------------------------------------------------
// Unit of work
// --------------------------------------------------

func (f *fakeRepo) snapshot() *fakeRepo {
	c := newFakeRepo()
	for k, v := range f.companies {
		c.companies[k] = v
	}
	for k, v := range f.workingHours {
		inner := make(map[int]models.CompanyWorkingHour, len(v))
		for d, wh := range v {
			inner[d] = wh
		}
		c.workingHours[k] = inner
	}
	for k, v := range f.services {
		c.services[k] = v
	}
	for k, v := range f.clients {
		c.clients[k] = v
	}
	for k, v := range f.appointments {
		c.appointments[k] = v
	}
	for k, v := range f.links {
		c.links[k] = append([]uint(nil), v...)
	}
	c.nextClientID = f.nextClientID
	c.nextServiceID = f.nextServiceID
	c.nextAppointmentID = f.nextAppointmentID
	return c
}

func (f *fakeRepo) restore(s *fakeRepo) {
	f.companies = s.companies
	f.workingHours = s.workingHours
	f.services = s.services
	f.clients = s.clients
	f.appointments = s.appointments
	f.links = s.links
	f.nextClientID = s.nextClientID
	f.nextServiceID = s.nextServiceID
	f.nextAppointmentID = s.nextAppointmentID
}

func (f *fakeRepo) InTransaction(ctx context.Context, fn func(domain.Repository) error) error {
	before := f.snapshot()
	if err := fn(f); err != nil {
		f.restore(before)
		return err
	}
	return nil
}

// --------------------------------------------------
// Company
// --------------------------------------------------

func (f *fakeRepo) GetCompanyByID(ctx context.Context, id uint) (*models.Company, error) {
	company, ok := f.companies[id]
	if !ok {
		return nil, httperr.ErrNotFound("company_not_found", "Empresa não encontrada.")
	}
	return &company, nil
}

func (f *fakeRepo) GetWorkingHour(ctx context.Context, companyID uint, dayOfWeek int) (*models.CompanyWorkingHour, error) {
	wh, ok := f.workingHours[companyID][dayOfWeek]
	if !ok {
		return nil, nil
	}
	return &wh, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (f *fakeRepo) ListActiveServices(ctx context.Context, companyID uint, ids []uint) ([]models.Service, error) {
	var out []models.Service
	for _, id := range ids {
		s, ok := f.services[id]
		if ok && s.CompanyID == companyID && s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindServiceByName(ctx context.Context, companyID uint, name string) (*models.Service, error) {
	for _, s := range f.services {
		if s.CompanyID == companyID && s.Name == name {
			s := s
			return &s, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) CreateService(ctx context.Context, service *models.Service) error {
	for _, s := range f.services {
		if s.CompanyID == service.CompanyID && s.Name == service.Name {
			return httperr.ErrConflict("service_already_exists", "Já existe um serviço com este nome.")
		}
	}

	service.ID = f.nextServiceID
	f.nextServiceID++
	f.services[service.ID] = *service
	return nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (f *fakeRepo) GetClientByID(ctx context.Context, id uint) (*models.Client, error) {
	client, ok := f.clients[id]
	if !ok {
		return nil, nil
	}
	return &client, nil
}

func (f *fakeRepo) FindClientByPhone(ctx context.Context, companyID uint, phone string) (*models.Client, error) {
	for _, c := range f.clients {
		if c.CompanyID == companyID && c.Phone == phone {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) FindClientByName(ctx context.Context, companyID uint, name string) (*models.Client, error) {
	for _, c := range f.clients {
		if c.CompanyID == companyID && c.Name == name {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) CreateClient(ctx context.Context, client *models.Client) error {
	if f.onCreateClient != nil {
		hook := f.onCreateClient
		f.onCreateClient = nil
		return hook(client)
	}

	for _, c := range f.clients {
		if c.CompanyID == client.CompanyID && c.Phone == client.Phone {
			return httperr.ErrConflict("client_phone_taken", "Já existe um cliente com este telefone.")
		}
	}

	client.ID = f.nextClientID
	f.nextClientID++
	f.clients[client.ID] = *client
	return nil
}

func (f *fakeRepo) UpdateClient(ctx context.Context, client *models.Client) error {
	if _, ok := f.clients[client.ID]; !ok {
		return errors.New("client not persisted")
	}
	f.clients[client.ID] = *client
	return nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (f *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	if f.failCreateAppointment != nil {
		return f.failCreateAppointment
	}

	ap.ID = f.nextAppointmentID
	f.nextAppointmentID++
	f.appointments[ap.ID] = *ap
	return nil
}

func (f *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	if _, ok := f.appointments[ap.ID]; !ok {
		return errors.New("appointment not persisted")
	}
	f.appointments[ap.ID] = *ap
	return nil
}

func (f *fakeRepo) DeleteAppointment(ctx context.Context, id uint) error {
	delete(f.appointments, id)
	delete(f.links, id)
	return nil
}

func (f *fakeRepo) AssertNoScheduleConflict(ctx context.Context, companyID uint, start, end time.Time) error {
	for _, ap := range f.appointments {
		if ap.CompanyID != companyID {
			continue
		}
		if ap.Status != string(domain.StatusPending) && ap.Status != string(domain.StatusConfirmed) {
			continue
		}
		if domain.Overlaps(start, end, ap.Date, ap.End()) {
			return httperr.ErrConflict(
				"schedule_conflict",
				"Já existe um agendamento ou bloqueio para este intervalo.",
			)
		}
	}
	return nil
}

// --------------------------------------------------
// Links
// --------------------------------------------------

func (f *fakeRepo) CreateAppointmentServices(ctx context.Context, appointmentID uint, serviceIDs []uint) error {
	if f.failCreateLinks != nil {
		return f.failCreateLinks
	}
	f.links[appointmentID] = append(f.links[appointmentID], serviceIDs...)
	return nil
}

func (f *fakeRepo) ReplaceAppointmentServices(ctx context.Context, appointmentID uint, serviceIDs []uint) error {
	delete(f.links, appointmentID)
	return f.CreateAppointmentServices(ctx, appointmentID, serviceIDs)
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (f *fakeRepo) withClient(ap models.Appointment) models.Appointment {
	if client, ok := f.clients[ap.ClientID]; ok {
		ap.Client = client
	}
	return ap
}

func (f *fakeRepo) GetAppointmentByID(ctx context.Context, id uint) (*models.Appointment, error) {
	ap, ok := f.appointments[id]
	if !ok {
		return nil, nil
	}
	ap = f.withClient(ap)
	return &ap, nil
}

func (f *fakeRepo) GetAppointmentWithClient(ctx context.Context, id uint) (*models.Appointment, error) {
	return f.GetAppointmentByID(ctx, id)
}

func (f *fakeRepo) isBlockRow(ap models.Appointment) bool {
	client, ok := f.clients[ap.ClientID]
	return ok && client.Name == domain.BlockClientName
}

func (f *fakeRepo) ListPendingAppointments(ctx context.Context) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.Status == string(domain.StatusPending) && !f.isBlockRow(ap) {
			out = append(out, f.withClient(ap))
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAppointmentsByCompany(ctx context.Context, companyID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.CompanyID == companyID && !f.isBlockRow(ap) {
			out = append(out, f.withClient(ap))
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAppointmentsByClient(ctx context.Context, clientID, companyID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.ClientID == clientID && ap.CompanyID == companyID {
			out = append(out, f.withClient(ap))
		}
	}
	return out, nil
}

func (f *fakeRepo) ListBlocksByCompany(ctx context.Context, companyID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.CompanyID == companyID && f.isBlockRow(ap) {
			out = append(out, f.withClient(ap))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (f *fakeRepo) ListActiveAppointmentsBetween(ctx context.Context, companyID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.CompanyID != companyID {
			continue
		}
		if ap.Status != string(domain.StatusPending) && ap.Status != string(domain.StatusConfirmed) {
			continue
		}
		if domain.Overlaps(start, end, ap.Date, ap.End()) {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)
