package application

import (
	"errors"
	"math"
	"strings"
	"testing"

	billing "payment-notices/internal/billing/domain"
)

func line(chargeCode int, tariff, quantity float64) billing.ChargeLine {
	return billing.ChargeLine{
		Charge:  billing.Charge{Code: chargeCode, AccountCode: 1, ServiceCode: chargeCode + 100, Quantity: quantity},
		Service: billing.Service{Code: chargeCode + 100, Name: "service", Tariff: tariff},
	}
}

func defaultPipeline(t *testing.T) *Pipeline {
	t.Helper()
	p, err := NewDefaultPipeline(DefaultPipelineConfig())
	if err != nil {
		t.Fatalf("new pipeline: %v", err)
	}
	return p
}

func TestProcessChargeScenarios(t *testing.T) {
	p := defaultPipeline(t)
	cases := []struct {
		name     string
		tariff   float64
		quantity float64
		want     float64
		stage    string
	}{
		{"below threshold", 45.50, 15.5, 705.25, StageStandard},
		{"above threshold", 2200.00, 2.5, 5225.0, StageDiscount},
		{"exactly threshold", 1000, 5, 4750.0, StageDiscount},
		{"zero quantity", 180.30, 0, 0, StageStandard},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := p.Evaluate(line(1, tc.tariff, tc.quantity))
			if err != nil {
				t.Fatalf("evaluate: %v", err)
			}
			if result.Amount != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, result.Amount)
			}
			if result.Stage != tc.stage {
				t.Fatalf("expected stage %s, got %s", tc.stage, result.Stage)
			}
		})
	}
}

func TestProcessChargeMatchesDiscountFormula(t *testing.T) {
	cfg := DefaultPipelineConfig()
	p := defaultPipeline(t)
	tariffs := []float64{0, 4.65, 45.5, 180.3, 999.99, 2200}
	quantities := []float64{0, 0.5, 2.5, 12.3, 350, 1000}
	for _, tariff := range tariffs {
		for _, quantity := range quantities {
			got, err := p.ProcessCharge(line(7, tariff, quantity))
			if err != nil {
				t.Fatalf("process %v x %v: %v", tariff, quantity, err)
			}
			base := tariff * quantity
			want := base
			if base >= cfg.DiscountThreshold {
				want = base * (1 - cfg.DiscountPercent/100)
			}
			if math.Abs(got-want) > 1e-9*math.Max(1, want) {
				t.Fatalf("%v x %v: expected %v, got %v", tariff, quantity, want, got)
			}
		}
	}
}

func TestProcessChargeIsIdempotent(t *testing.T) {
	p := defaultPipeline(t)
	l := line(3, 2200, 2.5)
	first, err := p.ProcessCharge(l)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := p.ProcessCharge(l)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical results, got %v and %v", first, second)
	}
}

func TestValidationErrors(t *testing.T) {
	p := defaultPipeline(t)

	_, err := p.ProcessCharge(line(42, 10, -1))
	var verr *billing.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.ChargeCode != 42 || !strings.Contains(err.Error(), "#42") {
		t.Fatalf("expected error to name charge 42, got %v", err)
	}

	_, err = p.ProcessCharge(line(5, -0.01, 3))
	if !errors.Is(err, billing.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "#105") {
		t.Fatalf("expected error to name service 105, got %v", err)
	}
}

type skipStage struct{}

func (skipStage) Name() string { return "skip" }

func (skipStage) Apply(billing.ChargeLine) (float64, bool, error) { return 0, false, nil }

type fixedStage struct{ amount float64 }

func (fixedStage) Name() string { return "fixed" }

func (s fixedStage) Apply(billing.ChargeLine) (float64, bool, error) { return s.amount, true, nil }

func TestNoStageHandlesLine(t *testing.T) {
	p, err := NewPipeline(ValidationStage{}, skipStage{})
	if err != nil {
		t.Fatalf("new pipeline: %v", err)
	}
	_, err = p.ProcessCharge(line(9, 1, 1))
	var perr *billing.ProcessingError
	if !errors.As(err, &perr) {
		t.Fatalf("expected processing error, got %v", err)
	}
	if perr.ChargeCode != 9 {
		t.Fatalf("expected charge 9, got %d", perr.ChargeCode)
	}
}

func TestCustomStageInsertedBeforeStandard(t *testing.T) {
	p, err := NewPipeline(ValidationStage{}, fixedStage{amount: 1}, StandardStage{})
	if err != nil {
		t.Fatalf("new pipeline: %v", err)
	}
	got, err := p.ProcessCharge(line(1, 100, 100))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if got != 1 {
		t.Fatalf("expected first handling stage to win, got %v", got)
	}
	names := p.Stages()
	if strings.Join(names, ",") != "validation,fixed,standard" {
		t.Fatalf("unexpected stage order %v", names)
	}
}

func TestNewPipelineRejectsInvalidInput(t *testing.T) {
	if _, err := NewPipeline(); err == nil {
		t.Fatalf("expected error for empty pipeline")
	}
	if _, err := NewPipeline(ValidationStage{}, nil); err == nil {
		t.Fatalf("expected error for nil stage")
	}
	if _, err := NewDefaultPipeline(PipelineConfig{DiscountThreshold: -1, DiscountPercent: 5}); err == nil {
		t.Fatalf("expected error for negative threshold")
	}
	if _, err := NewDefaultPipeline(PipelineConfig{DiscountThreshold: 1, DiscountPercent: 150}); err == nil {
		t.Fatalf("expected error for percent above 100")
	}
}

func TestCustomDiscountConfig(t *testing.T) {
	p, err := NewDefaultPipeline(PipelineConfig{DiscountThreshold: 100, DiscountPercent: 10})
	if err != nil {
		t.Fatalf("new pipeline: %v", err)
	}
	got, err := p.ProcessCharge(line(1, 10, 20))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if got != 180 {
		t.Fatalf("expected 180, got %v", got)
	}
}

func TestProcessNoticeSumsLines(t *testing.T) {
	p := defaultPipeline(t)
	notice := &billing.PaymentNotice{
		Lines: []billing.ChargeLine{
			line(1, 45.50, 15.5),
			line(2, 2200.00, 2.5),
			line(3, 10, 10),
		},
		PeriodMonth: 10,
		PeriodYear:  2026,
	}

	got, lines, err := p.ProcessNotice(notice)
	if err != nil {
		t.Fatalf("process notice: %v", err)
	}
	if got.TotalAmount != 6030.25 {
		t.Fatalf("expected 6030.25, got %v", got.TotalAmount)
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 line results, got %d", len(lines))
	}
	var sum float64
	for i, l := range lines {
		if l.ChargeCode != notice.Lines[i].Charge.Code {
			t.Fatalf("line %d out of order: %d", i, l.ChargeCode)
		}
		sum += l.Amount
	}
	if sum != got.TotalAmount {
		t.Fatalf("expected total %v to equal line sum %v", got.TotalAmount, sum)
	}
}

func TestProcessNoticeIsAllOrNothing(t *testing.T) {
	p := defaultPipeline(t)
	notice := &billing.PaymentNotice{
		Lines: []billing.ChargeLine{
			line(1, 45.50, 15.5),
			line(2, 10, -1),
		},
		TotalAmount: 0,
	}
	got, lines, err := p.ProcessNotice(notice)
	if !errors.Is(err, billing.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got != nil || lines != nil {
		t.Fatalf("expected no partial result")
	}
	if notice.TotalAmount != 0 {
		t.Fatalf("expected untouched total, got %v", notice.TotalAmount)
	}
}
