package port

import "context"

// UnitOfWork is a pattern that allows to run transactions across different repositories
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(uow UnitOfWork) error) error
	StatusRepo() StatusRepository
	ViewRepo() StatusViewRepository
	ExceptionRepo() VisibilityExceptionRepository
	ConnectionRepo() ConnectionRepository
	ProfileRepo() ProfileRepository
}
