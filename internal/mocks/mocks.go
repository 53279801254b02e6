// Package mocks holds testify mocks of the ports interfaces shared by the
// package tests.
package mocks

import (
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(t testingT, m *mock.Mock) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

func errorAt(ret mock.Arguments, i int) error {
	if fn, ok := ret.Get(i).(func() error); ok {
		return fn()
	}
	return ret.Error(i)
}
