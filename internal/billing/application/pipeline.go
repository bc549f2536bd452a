package application

import (
	"errors"
	"fmt"

	billing "payment-notices/internal/billing/domain"
)

// Default discount policy.
const (
	DefaultDiscountThreshold = 5000.0
	DefaultDiscountPercent   = 5.0
)

// Stage names reported in LineResult.
const (
	StageValidation = "validation"
	StageDiscount   = "discount"
	StageStandard   = "standard"
)

// Stage is one rule of the charge pipeline. A stage either returns a final
// amount (handled) or leaves the line to the next stage.
type Stage interface {
	Name() string
	Apply(line billing.ChargeLine) (amount float64, handled bool, err error)
}

// PipelineConfig parameterizes the default stages.
type PipelineConfig struct {
	DiscountThreshold float64 `yaml:"discount_threshold"`
	DiscountPercent   float64 `yaml:"discount_percent"`
}

// DefaultPipelineConfig returns threshold 5000 and a 5% discount.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		DiscountThreshold: DefaultDiscountThreshold,
		DiscountPercent:   DefaultDiscountPercent,
	}
}

// Validate rejects a negative threshold or a percent outside [0, 100].
func (c PipelineConfig) Validate() error {
	if c.DiscountThreshold < 0 {
		return errors.New("charge pipeline: negative discount threshold")
	}
	if c.DiscountPercent < 0 || c.DiscountPercent > 100 {
		return errors.New("charge pipeline: discount percent must be within 0..100")
	}
	return nil
}

// ValidationStage rejects negative quantities and tariffs. It never handles a line.
type ValidationStage struct{}

func (ValidationStage) Name() string { return StageValidation }

func (ValidationStage) Apply(line billing.ChargeLine) (float64, bool, error) {
	if line.Charge.Quantity < 0 {
		return 0, false, billing.NegativeQuantity(line.Charge)
	}
	if line.Service.Tariff < 0 {
		return 0, false, billing.NegativeTariff(line.Charge, line.Service)
	}
	return 0, false, nil
}

// DiscountStage applies Percent off lines whose base cost reaches Threshold.
// The threshold is inclusive.
type DiscountStage struct {
	Threshold float64
	Percent   float64
}

func (DiscountStage) Name() string { return StageDiscount }

func (s DiscountStage) Apply(line billing.ChargeLine) (float64, bool, error) {
	base := line.Cost()
	if base >= s.Threshold {
		return base - base*(s.Percent/100), true, nil
	}
	return 0, false, nil
}

// StandardStage is terminal: tariff * quantity.
type StandardStage struct{}

func (StandardStage) Name() string { return StageStandard }

func (StandardStage) Apply(line billing.ChargeLine) (float64, bool, error) {
	return line.Cost(), true, nil
}

// LineResult is the amount for one line and the stage that produced it.
type LineResult struct {
	ChargeCode int
	Amount     float64
	Stage      string
}

// Pipeline runs an immutable, ordered list of stages.
type Pipeline struct {
	stages []Stage
}

// NewPipeline builds a pipeline from the given stages in order.
func NewPipeline(stages ...Stage) (*Pipeline, error) {
	if len(stages) == 0 {
		return nil, errors.New("charge pipeline: no stages")
	}
	copied := make([]Stage, len(stages))
	for i, stage := range stages {
		if stage == nil {
			return nil, fmt.Errorf("charge pipeline: nil stage at %d", i)
		}
		copied[i] = stage
	}
	return &Pipeline{stages: copied}, nil
}

// NewDefaultPipeline builds validation -> discount -> standard.
func NewDefaultPipeline(cfg PipelineConfig) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewPipeline(
		ValidationStage{},
		DiscountStage{Threshold: cfg.DiscountThreshold, Percent: cfg.DiscountPercent},
		StandardStage{},
	)
}

// Stages returns the stage names in evaluation order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, stage := range p.stages {
		names[i] = stage.Name()
	}
	return names
}

// Evaluate runs the stages until one handles the line.
func (p *Pipeline) Evaluate(line billing.ChargeLine) (LineResult, error) {
	for _, stage := range p.stages {
		amount, handled, err := stage.Apply(line)
		if err != nil {
			return LineResult{}, err
		}
		if handled {
			return LineResult{ChargeCode: line.Charge.Code, Amount: amount, Stage: stage.Name()}, nil
		}
	}
	return LineResult{}, &billing.ProcessingError{ChargeCode: line.Charge.Code}
}

// ProcessCharge returns the amount for a single line.
func (p *Pipeline) ProcessCharge(line billing.ChargeLine) (float64, error) {
	result, err := p.Evaluate(line)
	if err != nil {
		return 0, err
	}
	return result.Amount, nil
}

// ProcessNotice sums every line of the notice and stores the total.
// On error the notice is left untouched.
func (p *Pipeline) ProcessNotice(notice *billing.PaymentNotice) (*billing.PaymentNotice, []LineResult, error) {
	if notice == nil {
		return nil, nil, errors.New("charge pipeline: nil notice")
	}
	results := make([]LineResult, 0, len(notice.Lines))
	var total float64
	for _, line := range notice.Lines {
		result, err := p.Evaluate(line)
		if err != nil {
			return nil, nil, err
		}
		total += result.Amount
		results = append(results, result)
	}
	notice.TotalAmount = total
	return notice, results, nil
}
