package toolsrv

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/omniagent-io/omniagent/pkg/llmutils"
	"github.com/omniagent-io/omniagent/services"
	"github.com/omniagent-io/omniagent/tools"
)

const CurrencyToolName = "convert_currency"

// CurrencyRequest is the input of the convert_currency tool.
type CurrencyRequest struct {
	FromCurrency string  `json:"from_currency" yaml:"from_currency" validate:"required" jsonschema:"title=from_currency,description=The source currency code (e.g. USD)."`
	ToCurrency   string  `json:"to_currency" yaml:"to_currency" validate:"required" jsonschema:"title=to_currency,description=The target currency code (e.g. EUR)."`
	Amount       float64 `json:"amount" yaml:"amount" validate:"required" jsonschema:"title=amount,description=The amount to convert."`
}

type currencyTool struct {
	ts *Toolset
}

var _ tools.Tool[CurrencyRequest, services.CurrencyResponse] = (*currencyTool)(nil)

func (t *currencyTool) Name() string {
	return CurrencyToolName
}

func (t *currencyTool) Description() string {
	return "Convert an amount from one currency to another. " +
		"Supported currencies: USD, EUR, GBP, INR, JPY. " +
		"Returns the converted amount with the exchange rate used."
}

func (t *currencyTool) Parameters() any {
	return parameters(CurrencyRequest{})
}

func (t *currencyTool) Run(ctx context.Context, req *CurrencyRequest) (*services.CurrencyResponse, error) {
	if err := t.ts.validate.Struct(req); err != nil {
		return nil, errors.WithMessage(err, "invalid request")
	}
	return t.ts.client.ConvertCurrency(ctx, req.FromCurrency, req.ToCurrency, req.Amount)
}

func (t *currencyTool) Call(ctx context.Context, input string) (string, error) {
	var req CurrencyRequest
	if err := json.Unmarshal(llmutils.CleanJSON([]byte(input)), &req); err != nil {
		return "", errors.WithMessage(err, "failed to unmarshal input")
	}
	res, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	if res.Rate == 0 {
		return fmt.Sprintf("Currency pair %s->%s is not supported.", req.FromCurrency, req.ToCurrency), nil
	}
	return fmt.Sprintf("%v %s = %v %s (rate: %v)",
		res.Amount, res.FromCurrency, res.Converted, res.ToCurrency, res.Rate), nil
}
