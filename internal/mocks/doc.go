// Package mocks provides shared test doubles for the application's interfaces.
//
// Two styles are used. Function-field mocks (MockJWTService, MockUserStore,
// MockPasswordVerifier) fall back to fixed values when a function is unset:
//
//	jwtSvc := &mocks.MockJWTService{
//	    ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
//	        return &auth.Claims{Subject: "usuario1"}, nil
//	    },
//	}
//
// MockTaskStore is a testify mock for tests that assert on call arguments.
package mocks
