package service_test

import (
	"todo/internal/service"
	"todo/internal/store"
)

var _ service.Service = (*store.Store)(nil)
