package backend

import "context"

type visitorKey struct{}

// WithVisitor scopes ctx to one visitor. Sessions obtained by SignUp belong
// to that visitor only.
func WithVisitor(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, visitorKey{}, id)
}

// VisitorFrom returns the visitor id carried by ctx, or "".
func VisitorFrom(ctx context.Context) string {
	id, _ := ctx.Value(visitorKey{}).(string)
	return id
}
