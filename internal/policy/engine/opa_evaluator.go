// Package engine evaluates the claim access policy using OPA Rego.
package engine

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/v1/ast"
	"github.com/open-policy-agent/opa/v1/rego"

	dealdomain "startup-benefits/backend/internal/deal/domain"
	userdomain "startup-benefits/backend/internal/user/domain"
)

const policyQuery = "data.benefits.claims.allow"

// claimPolicy is the claim access policy: public deals are claimable by any
// authenticated user; locked deals require the verification flag.
const claimPolicy = `package benefits.claims

default allow = false

allow if {
	input.deal.access_level == "public"
}

allow if {
	input.user.is_verified
}
`

// OPAEvaluator decides whether a user may claim a deal by evaluating the
// claim access policy with OPA Rego.
type OPAEvaluator struct {
	compiler *ast.Compiler
}

// NewOPAEvaluator compiles the claim policy and returns an evaluator.
func NewOPAEvaluator() (*OPAEvaluator, error) {
	compiler, err := ast.CompileModules(map[string]string{"claims.rego": claimPolicy})
	if err != nil {
		return nil, fmt.Errorf("compile claim policy: %w", err)
	}
	return &OPAEvaluator{compiler: compiler}, nil
}

// Allow reports whether the user may claim the deal. It is a pure decision
// function: no store access, no side effects.
func (e *OPAEvaluator) Allow(ctx context.Context, deal *dealdomain.Deal, user *userdomain.User) (bool, error) {
	input := map[string]interface{}{
		"deal": map[string]interface{}{
			"access_level": string(deal.AccessLevel),
		},
		"user": map[string]interface{}{
			"is_verified": user.IsVerified,
		},
	}
	q := rego.New(
		rego.Query(policyQuery),
		rego.Compiler(e.compiler),
		rego.Input(input),
	)
	rs, err := q.Eval(ctx)
	if err != nil {
		return false, fmt.Errorf("eval claim policy: %w", err)
	}
	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return false, fmt.Errorf("claim policy query returned no result")
	}
	allowed, ok := rs[0].Expressions[0].Value.(bool)
	if !ok {
		return false, fmt.Errorf("claim policy returned non-boolean result")
	}
	return allowed, nil
}

// HealthCheck verifies that the in-process Rego engine can evaluate the
// compiled policy. Returns nil on success.
func (e *OPAEvaluator) HealthCheck(ctx context.Context) error {
	_, err := e.Allow(ctx,
		&dealdomain.Deal{AccessLevel: dealdomain.AccessLevelPublic},
		&userdomain.User{},
	)
	return err
}
