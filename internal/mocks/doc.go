// Package mocks provides shared test doubles for the application's
// service and store interfaces.
//
// Function-field mocks (MockJWTService) suit handler tests that only need a
// canned answer; testify-based mocks (MockExtractionStore,
// MockExtractionService) suit tests that assert on calls:
//
//	st := &mocks.MockExtractionStore{}
//	st.On("GetByID", mock.Anything, id).Return(extraction, nil)
//	defer st.AssertExpectations(t)
package mocks
