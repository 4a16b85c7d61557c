// Package mocks provides shared test doubles for the application's
// interfaces, so individual test files do not each define their own.
//
//	generator := mocks.NewMockExampleGenerator("I ate an apple.", "Zjadłem jabłko.")
//	completer := &mocks.MockCompleter{}
//	completer.On("Complete", mock.Anything, mock.Anything).Return(mocks.TextResponse("..."), nil)
package mocks
