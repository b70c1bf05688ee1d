package middleware

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	ctxSalesRepID contextKey = "sales_rep_id"
	ctxRegionID   contextKey = "region_id"
	ctxRole       contextKey = "actor_role"
)

func SalesRepIDFromContext(ctx context.Context) uuid.UUID {
	if ctx == nil {
		return uuid.Nil
	}
	if v, ok := ctx.Value(ctxSalesRepID).(uuid.UUID); ok {
		return v
	}
	return uuid.Nil
}

func RegionIDFromContext(ctx context.Context) uuid.UUID {
	if ctx == nil {
		return uuid.Nil
	}
	if v, ok := ctx.Value(ctxRegionID).(uuid.UUID); ok {
		return v
	}
	return uuid.Nil
}

func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

// WithSalesRepID injects the sales rep identifier into the context.
func WithSalesRepID(ctx context.Context, salesRepID uuid.UUID) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSalesRepID, salesRepID)
}

// WithRegionID injects the region identifier into the context.
func WithRegionID(ctx context.Context, regionID uuid.UUID) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxRegionID, regionID)
}

// WithRole injects the actor role into the context.
func WithRole(ctx context.Context, role string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxRole, role)
}
