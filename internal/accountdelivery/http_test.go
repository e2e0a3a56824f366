package accountdelivery

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/nwtrack/networth/internal/domain"
	"github.com/nwtrack/networth/internal/middleware"
	"github.com/nwtrack/networth/pkg/errorspkg"
	"github.com/nwtrack/networth/pkg/ownerpkg"
	"github.com/nwtrack/networth/pkg/randompkg"
	"github.com/nwtrack/networth/pkg/tokenpkg"
	"github.com/nwtrack/networth/pkg/web"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("owner", ownerpkg.ValidOwner); err != nil {
			panic(err)
		}
	}

	os.Exit(m.Run())
}

func randomAccount() domain.Account {
	return domain.Account{
		ID:        int32(randompkg.IntBetween(1, 1000)),
		Name:      randompkg.String(10),
		Bank:      randompkg.Bank(),
		Category:  "brokerage",
		Owner:     randompkg.Owner(),
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
	}
}

func newTokenMaker(t *testing.T) tokenpkg.Maker {
	t.Helper()

	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker returned error: %v", err)
	}

	return tokenMaker
}

func TestCreate(t *testing.T) {
	account := randomAccount()
	tokenMaker := newTokenMaker(t)

	authType := middleware.AuthTypeBearer
	duration := time.Minute

	type requestBody struct {
		Name     string `json:"name"`
		Bank     string `json:"bank"`
		Category string `json:"category"`
		Owner    string `json:"owner"`
	}

	okBody := requestBody{
		Name:     account.Name,
		Bank:     account.Bank,
		Category: account.Category,
		Owner:    account.Owner,
	}

	createParams := domain.CreateAccountParams{
		Name:     account.Name,
		Bank:     account.Bank,
		Category: account.Category,
		Owner:    account.Owner,
	}

	testCases := []struct {
		name           string
		requestBody    requestBody
		setupAuth      func(t *testing.T, r *http.Request) error
		buildStubs     func(accountService *MockService)
		wantStatusCode int
		wantError      string
		checkData      func(data any)
	}{
		{
			name:        "OK",
			requestBody: okBody,
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, account.Owner, duration)
			},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Create(gomock.Any(), gomock.Eq(createParams)).
					Times(1).
					Return(account, nil)
			},
			wantStatusCode: http.StatusOK,
			checkData: func(data any) {
				got, ok := data.(*accountData)
				if !ok {
					t.Errorf(`res.Data=%v, failed type conversion`, data)
				}

				compareCreatedAt := cmpopts.EquateApproxTime(time.Second)
				if diff := cmp.Diff(account, got.Account, compareCreatedAt); diff != "" {
					t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:        "NoAuthorization",
			requestBody: okBody,
			setupAuth: func(t *testing.T, r *http.Request) error {
				return nil
			},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      middleware.ErrAuthHeaderNotFound.Error(),
		},
		{
			name: "InvalidOwner",
			requestBody: requestBody{
				Name:     account.Name,
				Category: account.Category,
				Owner:    "landlord",
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, account.Owner, duration)
			},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Owner is not a supported owner tier",
		},
		{
			name: "MissingName",
			requestBody: requestBody{
				Category: account.Category,
				Owner:    account.Owner,
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, account.Owner, duration)
			},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Name is required",
		},
		{
			name:        "ErrCategoryNotFound",
			requestBody: okBody,
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, account.Owner, duration)
			},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Create(gomock.Any(), gomock.Eq(createParams)).
					Times(1).
					Return(domain.Account{}, domain.ErrCategoryNotFound)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrCategoryNotFound.Error(),
		},
		{
			name:        "ErrSnapshotRebuild",
			requestBody: okBody,
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, account.Owner, duration)
			},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Create(gomock.Any(), gomock.Eq(createParams)).
					Times(1).
					Return(domain.Account{}, domain.ErrSnapshotRebuild)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      domain.ErrSnapshotRebuild.Error(),
		},
		{
			name:        "InternalError",
			requestBody: okBody,
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, account.Owner, duration)
			},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Create(gomock.Any(), gomock.Eq(createParams)).
					Times(1).
					Return(domain.Account{}, sql.ErrConnDone)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			accountService := NewMockService(ctrl)
			accountHandler := NewHandler(accountService)

			server := gin.New()
			server.Use(middleware.AuthMiddleware(tokenMaker))
			server.POST("/accounts", accountHandler.Create)

			tc.buildStubs(accountService)

			body, err := json.Marshal(tc.requestBody)
			if err != nil {
				t.Fatalf("Encoding request body error: %v", err)
			}

			req, err := http.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			if err = tc.setupAuth(t, req); err != nil {
				t.Fatalf("tc.setupAuth(t, %+v) returned error: %v", req, err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res := web.Response{Data: &accountData{}}

			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Errorf("Decoding response body error: %v", err)
			}

			if tc.wantStatusCode != http.StatusOK {
				if res.Error != tc.wantError {
					t.Errorf(`res.Error=%q, want %q`, res.Error, tc.wantError)
				}
			} else {
				tc.checkData(res.Data)
			}
		})
	}
}

func TestGet(t *testing.T) {
	account := randomAccount()
	tokenMaker := newTokenMaker(t)

	authType := middleware.AuthTypeBearer
	duration := time.Minute

	testCases := []struct {
		name           string
		accountID      int32
		setupAuth      func(t *testing.T, r *http.Request) error
		buildStubs     func(accountService *MockService)
		wantStatusCode int
		wantError      string
		checkData      func(data any)
	}{
		{
			name:      "OK",
			accountID: account.ID,
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, account.Owner, duration)
			},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(account, nil)
			},
			wantStatusCode: http.StatusOK,
			checkData: func(data any) {
				got, ok := data.(*accountData)
				if !ok {
					t.Errorf(`res.Data=%v, failed type conversion`, data)
				}

				compareCreatedAt := cmpopts.EquateApproxTime(time.Second)
				if diff := cmp.Diff(account, got.Account, compareCreatedAt); diff != "" {
					t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:      "InvalidID",
			accountID: -1,
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, account.Owner, duration)
			},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "ID must be greater or equal to 1",
		},
		{
			name:      "ErrAccountNotFound",
			accountID: account.ID,
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, account.Owner, duration)
			},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrAccountNotFound.Error(),
		},
		{
			name:      "InternalError",
			accountID: account.ID,
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, account.Owner, duration)
			},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(domain.Account{}, sql.ErrConnDone)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			accountService := NewMockService(ctrl)
			accountHandler := NewHandler(accountService)

			server := gin.New()
			server.Use(middleware.AuthMiddleware(tokenMaker))
			server.GET("/accounts/:id", accountHandler.Get)

			tc.buildStubs(accountService)

			url := fmt.Sprintf("/accounts/%d", tc.accountID)
			req, err := http.NewRequest(http.MethodGet, url, nil)
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			if err = tc.setupAuth(t, req); err != nil {
				t.Fatalf("tc.setupAuth(t, %+v) returned error: %v", req, err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res := web.Response{Data: &accountData{}}

			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if tc.wantStatusCode != http.StatusOK {
				if res.Error != tc.wantError {
					t.Errorf(`res.Error=%q, want %q`, res.Error, tc.wantError)
				}
			} else {
				tc.checkData(res.Data)
			}
		})
	}
}

func TestList(t *testing.T) {
	tokenMaker := newTokenMaker(t)

	authType := middleware.AuthTypeBearer
	duration := time.Minute

	accounts := make([]domain.Account, 5)
	for i := range accounts {
		accounts[i] = randomAccount()
	}

	testCases := []struct {
		name           string
		buildStubs     func(accountService *MockService)
		wantStatusCode int
		wantError      string
		checkData      func(data any)
	}{
		{
			name: "OK",
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					List(gomock.Any()).
					Times(1).
					Return(accounts, nil)
			},
			wantStatusCode: http.StatusOK,
			checkData: func(data any) {
				got, ok := data.(*listData)
				if !ok {
					t.Errorf(`res.Data=%v, failed type conversion`, data)
				}

				compareCreatedAt := cmpopts.EquateApproxTime(time.Second)
				if diff := cmp.Diff(accounts, got.Accounts, compareCreatedAt); diff != "" {
					t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name: "InternalError",
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					List(gomock.Any()).
					Times(1).
					Return(nil, sql.ErrConnDone)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			accountService := NewMockService(ctrl)
			accountHandler := NewHandler(accountService)

			server := gin.New()
			server.Use(middleware.AuthMiddleware(tokenMaker))
			server.GET("/accounts", accountHandler.List)

			tc.buildStubs(accountService)

			req, err := http.NewRequest(http.MethodGet, "/accounts", nil)
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			if err := middleware.AddAuthorization(req, tokenMaker, authType, "me", duration); err != nil {
				t.Fatalf("middleware.AddAuthorization returned error: %v", err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res := web.Response{Data: &listData{}}

			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if tc.wantStatusCode != http.StatusOK {
				if res.Error != tc.wantError {
					t.Errorf(`res.Error=%q, want %q`, res.Error, tc.wantError)
				}
			} else {
				tc.checkData(res.Data)
			}
		})
	}
}

func TestUpdate(t *testing.T) {
	account := randomAccount()
	tokenMaker := newTokenMaker(t)

	authType := middleware.AuthTypeBearer
	duration := time.Minute

	newCategory := "real_estate"
	updated := account
	updated.Category = newCategory

	updateParams := domain.UpdateAccountParams{
		ID:       account.ID,
		Category: &newCategory,
	}

	type requestBody struct {
		Category *string `json:"category,omitempty"`
		Owner    *string `json:"owner,omitempty"`
	}

	testCases := []struct {
		name           string
		accountID      int32
		requestBody    requestBody
		buildStubs     func(accountService *MockService)
		wantStatusCode int
		wantError      string
		checkData      func(data any)
	}{
		{
			name:        "OK",
			accountID:   account.ID,
			requestBody: requestBody{Category: &newCategory},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Update(gomock.Any(), gomock.Eq(updateParams)).
					Times(1).
					Return(updated, nil)
			},
			wantStatusCode: http.StatusOK,
			checkData: func(data any) {
				got, ok := data.(*accountData)
				if !ok {
					t.Errorf(`res.Data=%v, failed type conversion`, data)
				}

				compareCreatedAt := cmpopts.EquateApproxTime(time.Second)
				if diff := cmp.Diff(updated, got.Account, compareCreatedAt); diff != "" {
					t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:      "InvalidOwner",
			accountID: account.ID,
			requestBody: requestBody{
				Owner: func() *string { s := "tenant"; return &s }(),
			},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Update(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Owner is not a supported owner tier",
		},
		{
			name:        "ErrAccountNotFound",
			accountID:   account.ID,
			requestBody: requestBody{Category: &newCategory},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Update(gomock.Any(), gomock.Eq(updateParams)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrAccountNotFound.Error(),
		},
		{
			name:        "ErrCategoryNotFound",
			accountID:   account.ID,
			requestBody: requestBody{Category: &newCategory},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Update(gomock.Any(), gomock.Eq(updateParams)).
					Times(1).
					Return(domain.Account{}, domain.ErrCategoryNotFound)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrCategoryNotFound.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			accountService := NewMockService(ctrl)
			accountHandler := NewHandler(accountService)

			server := gin.New()
			server.Use(middleware.AuthMiddleware(tokenMaker))
			server.PATCH("/accounts/:id", accountHandler.Update)

			tc.buildStubs(accountService)

			body, err := json.Marshal(tc.requestBody)
			if err != nil {
				t.Fatalf("Encoding request body error: %v", err)
			}

			url := fmt.Sprintf("/accounts/%d", tc.accountID)
			req, err := http.NewRequest(http.MethodPatch, url, bytes.NewReader(body))
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			if err := middleware.AddAuthorization(req, tokenMaker, authType, account.Owner, duration); err != nil {
				t.Fatalf("middleware.AddAuthorization returned error: %v", err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res := web.Response{Data: &accountData{}}

			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if tc.wantStatusCode != http.StatusOK {
				if res.Error != tc.wantError {
					t.Errorf(`res.Error=%q, want %q`, res.Error, tc.wantError)
				}
			} else {
				tc.checkData(res.Data)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	account := randomAccount()
	tokenMaker := newTokenMaker(t)

	authType := middleware.AuthTypeBearer
	duration := time.Minute

	testCases := []struct {
		name           string
		accountID      int32
		buildStubs     func(accountService *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name:      "OK",
			accountID: account.ID,
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Delete(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:      "ErrAccountNotFound",
			accountID: account.ID,
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Delete(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(domain.ErrAccountNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrAccountNotFound.Error(),
		},
		{
			name:      "ErrSnapshotRebuild",
			accountID: account.ID,
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Delete(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(domain.ErrSnapshotRebuild)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      domain.ErrSnapshotRebuild.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			accountService := NewMockService(ctrl)
			accountHandler := NewHandler(accountService)

			server := gin.New()
			server.Use(middleware.AuthMiddleware(tokenMaker))
			server.DELETE("/accounts/:id", accountHandler.Delete)

			tc.buildStubs(accountService)

			url := fmt.Sprintf("/accounts/%d", tc.accountID)
			req, err := http.NewRequest(http.MethodDelete, url, nil)
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			if err := middleware.AddAuthorization(req, tokenMaker, authType, account.Owner, duration); err != nil {
				t.Fatalf("middleware.AddAuthorization returned error: %v", err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			var res web.Response
			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if res.Error != tc.wantError {
				t.Errorf(`res.Error=%q, want %q`, res.Error, tc.wantError)
			}
		})
	}
}
