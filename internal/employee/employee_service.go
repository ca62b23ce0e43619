package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Shivkumar-Raghuwanshi/employee-hub/internal/country"
	employeeerrors "github.com/Shivkumar-Raghuwanshi/employee-hub/internal/employee/errors"
	"github.com/Shivkumar-Raghuwanshi/employee-hub/internal/events"
	"github.com/Shivkumar-Raghuwanshi/employee-hub/internal/messaging/kafka"
	"github.com/Shivkumar-Raghuwanshi/employee-hub/internal/shared/contextutil"
	"github.com/Shivkumar-Raghuwanshi/employee-hub/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/datatypes"
)

const EmployeeOptionsKeyPrefix = "employees:options:"

func GetEmployeeOptionsKey(ownerID string) string {
	return EmployeeOptionsKeyPrefix + ownerID
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, ownerID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, ownerID string) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context, ownerID string) ([]EmployeeOption, error)
	GetByID(ctx context.Context, ownerID, id string) (EmployeeResponse, error)
	Update(ctx context.Context, ownerID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, counter, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		outbox:  outboxRepo,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l}
}

func (s *service) Create(
	ctx context.Context,
	ownerID string,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("owner_id", ownerID),
		zap.String("employee_id", req.ID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	employeeID := strings.TrimSpace(req.ID)
	if employeeID == "" {
		nextVal, err := s.counter.GetNextValue(ctx, ownerID, "employee_id")
		if err != nil {
			s.logger.Error("create employee generate id failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		employeeID = fmt.Sprintf("EMP-%06d", nextVal)
	}

	empl := &Employee{
		ID:             employeeID,
		OwnerID:        ownerID, // stamped from verified identity, never from the body
		Name:           req.Name,
		AddressLine1:   req.Address.Line1,
		AddressCity:    req.Address.City,
		AddressCountry: req.Address.Country,
		AddressZipCode: req.Address.ZipCode,
		ContactMethods: toContactMethods(req.ContactMethods),
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueEvent(ctx, tx, events.EmployeeCreated, empl.ID, ownerID, rid); err != nil {
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx, ownerID)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(
	ctx context.Context,
	ownerID string,
) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested", zap.String("owner_id", ownerID))
	empls, err := s.repo.FindAllByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(empls), nil
}

func (s *service) GetOptions(ctx context.Context, ownerID string) ([]EmployeeOption, error) {
	cacheKey := GetEmployeeOptionsKey(ownerID)

	// 1. Cek Redis
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []EmployeeOption
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// 2. Singleflight untuk handle traffic tinggi saat form dibuka
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		empls, err := s.repo.FindOptionsByOwner(ctx, ownerID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeOption, len(empls))
		for i, e := range empls {
			resp[i] = EmployeeOption{ID: e.ID, Name: e.Name}
		}

		// 3. Simpan ke Redis
		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]EmployeeOption), nil
}

func (s *service) GetByID(
	ctx context.Context,
	ownerID, id string,
) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested",
		zap.String("owner_id", ownerID),
		zap.String("employee_id", id),
	)
	empl, err := s.repo.FindByIDAndOwner(ctx, ownerID, id)
	if err != nil {
		s.logger.Warn("get employee by id failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(
	ctx context.Context,
	ownerID, id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.String("owner_id", ownerID),
		zap.String("employee_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByIDAndOwner(ctx, ownerID, id)
	if err != nil {
		s.logger.Warn("update employee fetch existing failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	applyPatch(empl, req)

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueEvent(ctx, tx, events.EmployeeUpdated, empl.ID, ownerID, rid); err != nil {
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx, ownerID)

	s.logger.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*empl), nil
}

func (s *service) Delete(
	ctx context.Context,
	ownerID, id string,
) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested",
		zap.String("owner_id", ownerID),
		zap.String("employee_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rows, err := qtx.Delete(ctx, ownerID, id)
	if err != nil {
		s.logger.Error("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	if rows == 0 {
		// Second delete of the same id lands here too
		return employeeerrors.ErrEmployeeNotFound
	}

	if err := s.enqueueEvent(ctx, tx, events.EmployeeDeleted, id, ownerID, rid); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.invalidateOptionsCache(ctx, ownerID)

	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) enqueueEvent(
	ctx context.Context,
	tx *sql.Tx,
	eventType, employeeID, ownerID, requestID string,
) error {
	if s.outbox == nil {
		return nil
	}

	event := events.EmployeeChangedEvent{
		EventType:  eventType,
		RequestID:  requestID,
		EmployeeID: employeeID,
		OwnerID:    ownerID,
		OccurredAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal event failed", zap.String("request_id", requestID), zap.Error(err))
		return err
	}

	outboxRepo := s.outbox.WithTx(tx)
	if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		AggregateType: "employee",
		AggregateID:   employeeID,
		EventType:     eventType,
		Topic:         events.EmployeeLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("employee outbox persist failed",
			zap.String("employee_id", employeeID),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return err
	}

	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context, ownerID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetEmployeeOptionsKey(ownerID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func applyPatch(empl *Employee, req UpdateEmployeeRequest) {
	if req.Name != nil {
		empl.Name = *req.Name
	}
	if req.Address != nil {
		if req.Address.Line1 != nil {
			empl.AddressLine1 = *req.Address.Line1
		}
		if req.Address.City != nil {
			empl.AddressCity = *req.Address.City
		}
		if req.Address.Country != nil {
			empl.AddressCountry = *req.Address.Country
		}
		if req.Address.ZipCode != nil {
			empl.AddressZipCode = *req.Address.ZipCode
		}
	}
	if req.ContactMethods != nil {
		// Full replacement, an empty array clears the list
		empl.ContactMethods = toContactMethods(*req.ContactMethods)
	}
}

func toContactMethods(payloads []ContactMethodPayload) datatypes.JSONSlice[ContactMethod] {
	methods := make([]ContactMethod, len(payloads))
	for i, p := range payloads {
		methods[i] = ContactMethod{Kind: p.Kind, Value: p.Value}
	}
	return datatypes.NewJSONSlice(methods)
}

func mapToResponse(empl Employee) EmployeeResponse {
	contacts := make([]ContactMethodPayload, len(empl.ContactMethods))
	for i, m := range empl.ContactMethods {
		contacts[i] = ContactMethodPayload{Kind: m.Kind, Value: m.Value}
	}

	return EmployeeResponse{
		ID:      empl.ID,
		OwnerID: empl.OwnerID,
		Name:    empl.Name,
		Address: AddressResponse{
			Line1:          empl.AddressLine1,
			City:           empl.AddressCity,
			Country:        empl.AddressCountry,
			ZipCode:        empl.AddressZipCode,
			CountryCode:    country.Code(empl.AddressCountry),
			CountryFlagURL: country.FlagURL(empl.AddressCountry),
		},
		ContactMethods: contacts,
		CreatedAt:      empl.CreatedAt,
		UpdatedAt:      empl.UpdatedAt,
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
