package workflow_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/submitez/submitez/internal/generation"
	"github.com/submitez/submitez/internal/submission"
	"github.com/submitez/submitez/internal/validation"
	"github.com/submitez/submitez/internal/workflow"
	"github.com/submitez/submitez/pkg/lifecycle"
	"github.com/submitez/submitez/pkg/pagination"
	"github.com/submitez/submitez/pkg/storage"
)

// memStore is an in-memory storage.System for pipeline tests.
type memStore struct {
	objects map[string][]byte
	types   map[string]string
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (s *memStore) Start(*lifecycle.Coordinator) error { return nil }

func (s *memStore) Upload(_ context.Context, key string, reader io.Reader, contentType string) (*storage.ObjectMeta, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	s.objects[key] = data
	s.types[key] = contentType
	return &storage.ObjectMeta{
		Key:           key,
		URL:           "memory://" + key,
		ContentType:   contentType,
		ContentLength: int64(len(data)),
	}, nil
}

func (s *memStore) Download(_ context.Context, key string) (*storage.DownloadResult, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &storage.DownloadResult{
		Body:          io.NopCloser(bytes.NewReader(data)),
		ContentType:   s.types[key],
		ContentLength: int64(len(data)),
	}, nil
}

func (s *memStore) Find(_ context.Context, key string) (*storage.ObjectMeta, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &storage.ObjectMeta{Key: key, ContentLength: int64(len(data))}, nil
}

func (s *memStore) List(context.Context, string, string, int32) (*storage.ListResult, error) {
	return &storage.ListResult{}, nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	if _, ok := s.objects[key]; !ok {
		return storage.ErrNotFound
	}
	delete(s.objects, key)
	return nil
}

func (s *memStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok := s.objects[key]
	return ok, nil
}

// memSubmissions is an in-memory submission.System for pipeline tests.
type memSubmissions struct {
	subs map[uuid.UUID]*submission.Submission
}

func newMemSubmissions() *memSubmissions {
	return &memSubmissions{subs: map[uuid.UUID]*submission.Submission{}}
}

func (m *memSubmissions) put(sub *submission.Submission) {
	clone := *sub
	m.subs[sub.ID] = &clone
}

func (m *memSubmissions) Handler() *submission.Handler { return nil }

func (m *memSubmissions) List(context.Context, pagination.PageRequest, submission.Filters) (*pagination.PageResult[submission.Submission], error) {
	return nil, errors.New("not implemented")
}

func (m *memSubmissions) Find(_ context.Context, id uuid.UUID) (*submission.Submission, error) {
	sub, ok := m.subs[id]
	if !ok {
		return nil, submission.ErrNotFound
	}
	clone := *sub
	return &clone, nil
}

func (m *memSubmissions) Create(_ context.Context, cmd submission.CreateCommand) (*submission.Submission, error) {
	sub := submission.NewSubmission()
	sub.BrokerName = cmd.BrokerName
	m.put(sub)
	return sub, nil
}

func (m *memSubmissions) Save(_ context.Context, sub *submission.Submission) (*submission.Submission, error) {
	m.put(sub)
	clone := *sub
	return &clone, nil
}

func (m *memSubmissions) Transition(ctx context.Context, id uuid.UUID, next submission.Status) (*submission.Submission, error) {
	sub, err := m.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sub.UpdateStatus(next); err != nil {
		return nil, err
	}
	return m.Save(ctx, sub)
}

func (m *memSubmissions) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.subs, id)
	return nil
}

func newService(subs *memSubmissions, store *memStore) *workflow.Service {
	return workflow.NewService(
		subs,
		nil,
		validation.NewEngine(slog.Default()),
		nil,
		store,
		slog.Default(),
	)
}

func TestUploadStoresFilesAndAdvancesStatus(t *testing.T) {
	subs := newMemSubmissions()
	store := newMemStore()
	svc := newService(subs, store)

	sub := submission.NewSubmission()
	subs.put(sub)

	files := []workflow.UploadFile{
		{Filename: "application.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.7 test")},
		{Filename: "sov.xlsx", Data: []byte("workbook")},
	}

	updated, err := svc.Upload(context.Background(), sub.ID, files)
	if err != nil {
		t.Fatalf("Upload error = %v", err)
	}

	if updated.Status != submission.StatusUploaded {
		t.Errorf("status = %s, want uploaded", updated.Status)
	}
	if len(updated.UploadedFiles) != 2 {
		t.Fatalf("uploaded files = %d, want 2", len(updated.UploadedFiles))
	}

	key := updated.UploadedFiles[0].StorageKey
	if _, ok := store.objects[key]; !ok {
		t.Errorf("file not stored at %s", key)
	}
	if updated.UploadedFiles[0].ContentType != "application/pdf" {
		t.Errorf("content type = %s", updated.UploadedFiles[0].ContentType)
	}
}

func TestUploadNoFiles(t *testing.T) {
	svc := newService(newMemSubmissions(), newMemStore())

	_, err := svc.Upload(context.Background(), uuid.New(), nil)
	if !errors.Is(err, workflow.ErrNoFilesProvided) {
		t.Errorf("error = %v, want ErrNoFilesProvided", err)
	}
}

func TestUploadUnknownSubmission(t *testing.T) {
	svc := newService(newMemSubmissions(), newMemStore())

	files := []workflow.UploadFile{{Filename: "a.pdf", Data: []byte("x")}}
	_, err := svc.Upload(context.Background(), uuid.New(), files)
	if !errors.Is(err, submission.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestUploadRejectedFromExtracting(t *testing.T) {
	subs := newMemSubmissions()
	svc := newService(subs, newMemStore())

	sub := submission.NewSubmission()
	sub.Status = submission.StatusExtracting
	subs.put(sub)

	files := []workflow.UploadFile{{Filename: "a.pdf", Data: []byte("x")}}
	_, err := svc.Upload(context.Background(), sub.ID, files)
	if !errors.Is(err, submission.ErrInvalidTransition) {
		t.Errorf("error = %v, want ErrInvalidTransition", err)
	}
}

func TestValidatePersistsResults(t *testing.T) {
	subs := newMemSubmissions()
	svc := newService(subs, newMemStore())

	sub := submission.NewSubmission()
	sub.Status = submission.StatusExtracted
	sub.Applicant = &submission.Applicant{BusinessName: "Acme"}
	subs.put(sub)

	updated, result, err := svc.Validate(context.Background(), sub.ID, false)
	if err != nil {
		t.Fatalf("Validate error = %v", err)
	}

	if updated.Status != submission.StatusValidated {
		t.Errorf("status = %s, want validated", updated.Status)
	}
	if result == nil {
		t.Fatal("validation result missing")
	}

	// No locations: BR001 blocks validity and the stored errors reflect it.
	if result.IsValid {
		t.Error("submission without locations should be invalid")
	}
	if updated.IsValid {
		t.Error("persisted IsValid should be false")
	}
	if len(updated.ValidationErrors) == 0 {
		t.Error("validation errors not persisted")
	}

	stored, err := subs.Find(context.Background(), sub.ID)
	if err != nil {
		t.Fatalf("Find error = %v", err)
	}
	if stored.Status != submission.StatusValidated {
		t.Errorf("stored status = %s, want validated", stored.Status)
	}
}

func TestGenerateGateRejectsIncomplete(t *testing.T) {
	subs := newMemSubmissions()
	svc := newService(subs, newMemStore())

	sub := submission.NewSubmission()
	sub.Status = submission.StatusValidated
	subs.put(sub)

	_, _, err := svc.Generate(context.Background(), sub.ID, nil)
	if !errors.Is(err, workflow.ErrNotReady) {
		t.Errorf("error = %v, want ErrNotReady", err)
	}
}

func TestGenerateCompletesWhenAllFormsFail(t *testing.T) {
	subs := newMemSubmissions()
	store := newMemStore()

	// Templates directory does not exist, so every form fails with a
	// per-form template error rather than a stage failure.
	generator := generation.NewService("no-such-templates", store, slog.Default())
	svc := workflow.NewService(
		subs,
		nil,
		validation.NewEngine(slog.Default()),
		generator,
		store,
		slog.Default(),
	)

	sub := readySubmission()
	subs.put(sub)

	updated, outputs, err := svc.Generate(context.Background(), sub.ID, nil)
	if err != nil {
		t.Fatalf("Generate error = %v", err)
	}

	if updated.Status != submission.StatusCompleted {
		t.Errorf("status = %s, want completed despite zero generated forms", updated.Status)
	}
	if len(updated.GeneratedFiles) != 0 {
		t.Errorf("generated files = %d, want 0", len(updated.GeneratedFiles))
	}

	if len(outputs) == 0 {
		t.Fatal("expected per-form outputs")
	}
	for _, output := range outputs {
		if output.Error == "" {
			t.Errorf("form %s: expected a recorded error", output.FormType)
		}
	}
}

// readySubmission builds a validated submission with enough of every
// entity filled in to clear the generation completeness gate.
func readySubmission() *submission.Submission {
	floatPtr := func(v float64) *float64 { return &v }
	intPtr := func(v int) *int { return &v }
	boolPtr := func(v bool) *bool { return &v }

	sub := submission.NewSubmission()
	sub.Status = submission.StatusValidated
	sub.Applicant = &submission.Applicant{
		BusinessName:         "Acme Manufacturing Inc",
		FEIN:                 "12-3456789",
		DBAName:              "Acme Mfg",
		NAICSCode:            "332710",
		NAICSDescription:     "Machine Shops",
		BusinessType:         "Corporation",
		YearsInBusiness:      intPtr(18),
		Description:          "Precision machining and fabrication",
		ContactName:          "Jordan Reyes",
		ContactTitle:         "Controller",
		Email:                "owner@acmemfg.com",
		Phone:                "(512) 555-0142",
		Fax:                  "(512) 555-0143",
		Website:              "https://acmemfg.com",
		MailingAddressLine1:  "100 Industrial Way",
		MailingAddressLine2:  "Suite 200",
		MailingCity:          "Houston",
		MailingState:         "TX",
		MailingZip:           "77001",
		MailingCountry:       "USA",
		PhysicalAddressLine1: "100 Industrial Way",
		PhysicalAddressLine2: "Suite 200",
		PhysicalCity:         "Houston",
		PhysicalState:        "TX",
		PhysicalZip:          "77001",
		PhysicalCountry:      "USA",
	}
	eff := submission.NewDate(2026, 1, 1)
	exp := submission.NewDate(2027, 1, 1)
	sub.Coverage = &submission.Coverage{
		PolicyType:               "property",
		EffectiveDate:            &eff,
		ExpirationDate:           &exp,
		PolicyTermMonths:         intPtr(12),
		BuildingLimit:            floatPtr(2_000_000),
		ContentsLimit:            floatPtr(400_000),
		BusinessIncomeLimit:      floatPtr(100_000),
		ExtraExpenseLimit:        floatPtr(50_000),
		EquipmentBreakdownLimit:  floatPtr(250_000),
		BuildingDeductible:       floatPtr(5_000),
		ContentsDeductible:       floatPtr(2_500),
		BusinessIncomeDeductible: "72 hours",
		WindHailDeductible:       "2%",
		AllOtherPerilsDeductible: floatPtr(5_000),
		ReplacementCost:          boolPtr(true),
		AgreedValue:              boolPtr(false),
		CoinsurancePercentage:    intPtr(80),
		FloodCoverage:            boolPtr(false),
		EarthquakeCoverage:       boolPtr(false),
		TerrorismCoverage:        boolPtr(false),
		CyberCoverage:            boolPtr(false),
		EstimatedAnnualPremium:   floatPtr(38_500),
		PremiumBasis:             "TIV",
		SpecialConditions:        "None",
	}
	sub.Locations = []submission.PropertyLocation{{
		LocationNumber:        "1",
		AddressLine1:          "100 Industrial Way",
		AddressLine2:          "Building A",
		City:                  "Houston",
		State:                 "TX",
		ZipCode:               "77001",
		Country:               "USA",
		County:                "Harris",
		BuildingDescription:   "Single-story manufacturing plant",
		YearBuilt:             intPtr(1995),
		ConstructionType:      "Masonry",
		NumberOfStories:       intPtr(1),
		TotalSquareFeet:       intPtr(40_000),
		OccupancyType:         "Manufacturing",
		ProtectionClass:       "3",
		DistanceToFireStation: floatPtr(1.5),
		DistanceToHydrant:     intPtr(500),
		SprinklerSystem:       boolPtr(true),
		AlarmSystem:           boolPtr(true),
		SecuritySystem:        boolPtr(true),
		FireAlarm:             boolPtr(true),
		BurglarAlarm:          boolPtr(true),
		BuildingValue:         floatPtr(1_500_000),
		ContentsValue:         floatPtr(400_000),
		BusinessIncomeValue:   floatPtr(100_000),
		TotalInsuredValue:     floatPtr(2_000_000),
		Basement:              boolPtr(false),
		BasementFinished:      boolPtr(false),
		RoofType:              "Metal",
		RoofYear:              intPtr(2015),
		HeatingType:           "Gas",
		CoolingType:           "Central",
		ElectricalYear:        intPtr(2010),
		PlumbingYear:          intPtr(2010),
		UpdatesWiring:         boolPtr(true),
		UpdatesPlumbing:       boolPtr(true),
		UpdatesHeating:        boolPtr(true),
		UpdatesRoof:           boolPtr(true),
		PriorLosses:           boolPtr(false),
		NumberOfEmployees:     intPtr(40),
		HoursOfOperation:      "7am-6pm",
	}}
	sub.Normalize()
	return sub
}

func TestDownloadFileByName(t *testing.T) {
	subs := newMemSubmissions()
	store := newMemStore()
	svc := newService(subs, store)

	sub := submission.NewSubmission()
	subs.put(sub)

	files := []workflow.UploadFile{{Filename: "application.pdf", ContentType: "application/pdf", Data: []byte("content")}}
	if _, err := svc.Upload(context.Background(), sub.ID, files); err != nil {
		t.Fatalf("Upload error = %v", err)
	}

	ref, result, err := svc.DownloadFile(context.Background(), sub.ID, "application.pdf")
	if err != nil {
		t.Fatalf("DownloadFile error = %v", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		t.Fatalf("read error = %v", err)
	}
	if string(data) != "content" {
		t.Errorf("data = %q", data)
	}
	if ref.Filename != "application.pdf" {
		t.Errorf("filename = %s", ref.Filename)
	}

	_, _, err = svc.DownloadFile(context.Background(), sub.ID, "missing.pdf")
	if !errors.Is(err, workflow.ErrFileNotFound) {
		t.Errorf("error = %v, want ErrFileNotFound", err)
	}
}
