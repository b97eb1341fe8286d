package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rvasanth/distributor-console/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestWalletBalance(t *testing.T) {
	t.Run("Normalizes wallet_balance Key", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/wallet/get/balance/distributor/d1", r.URL.Path)
			assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
			w.Write([]byte(`{"status": "success", "message": "", "data": {"wallet_balance": "1234.56"}}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second, staticToken("tok-123"))

		// Act
		balance, err := client.WalletBalance(context.Background(), models.RoleDistributor, "d1")

		// Assert
		assert.NoError(t, err)
		assert.True(t, balance.Equal(decimal.RequireFromString("1234.56")))
	})

	t.Run("Falls Back To balance Key", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status": true, "data": {"balance": 99.5}}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second, nil)

		balance, err := client.WalletBalance(context.Background(), models.RoleMaster, "m1")

		assert.NoError(t, err)
		assert.True(t, balance.Equal(decimal.RequireFromString("99.5")))
	})

	t.Run("Prefers wallet_balance When Both Present", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status": 1, "data": {"wallet_balance": "10", "balance": "20"}}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second, nil)

		balance, err := client.WalletBalance(context.Background(), models.RoleMaster, "m1")

		assert.NoError(t, err)
		assert.True(t, balance.Equal(decimal.NewFromInt(10)))
	})

	t.Run("Missing Balance Keys", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status": true, "data": {"something_else": 1}}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second, nil)

		_, err := client.WalletBalance(context.Background(), models.RoleMaster, "m1")

		var malformed *MalformedResponseError
		assert.ErrorAs(t, err, &malformed)
	})
}

func TestErrorMapping(t *testing.T) {
	t.Run("Unauthorized Matches Sentinel", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"status": false, "message": "token expired"}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second, staticToken("stale"))

		// Act
		_, err := client.WalletBalance(context.Background(), models.RoleDistributor, "d1")

		// Assert
		assert.ErrorIs(t, err, ErrUnauthorized)
		var srvErr *ServerError
		assert.ErrorAs(t, err, &srvErr)
		assert.Equal(t, http.StatusUnauthorized, srvErr.StatusCode)
		assert.Equal(t, "token expired", srvErr.Message)
	})

	t.Run("Forbidden Matches Sentinel", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"status": false, "message": "wrong role"}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second, nil)

		_, err := client.WalletBalance(context.Background(), models.RoleDistributor, "d1")

		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("Business Rejection Is Not Unauthorized", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status": false, "message": "Insufficient balance in source wallet"}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second, nil)

		_, err := client.CreateTransfer(context.Background(), &models.TransferRequest{
			FromID: "d1", ToID: "r1", Amount: decimal.NewFromInt(10),
		})

		var srvErr *ServerError
		assert.ErrorAs(t, err, &srvErr)
		assert.Equal(t, "Insufficient balance in source wallet", srvErr.Message)
		assert.False(t, errors.Is(err, ErrUnauthorized))
	})

	t.Run("Timeout Maps To NetworkError", func(t *testing.T) {
		// Arrange: the server answers slower than the client's deadline.
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer server.Close()

		client := NewClient(server.URL, 20*time.Millisecond, nil)

		// Act
		_, err := client.WalletBalance(context.Background(), models.RoleDistributor, "d1")

		// Assert
		var netErr *NetworkError
		assert.ErrorAs(t, err, &netErr)
	})

	t.Run("Non-JSON Success Body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>gateway error page</html>`))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second, nil)

		_, err := client.WalletBalance(context.Background(), models.RoleDistributor, "d1")

		var malformed *MalformedResponseError
		assert.ErrorAs(t, err, &malformed)
	})
}

func TestLoginCall(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/distributor/login", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)

			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "dist-1", body["user_id"])
			assert.Equal(t, "pw", body["password"])

			w.Write([]byte(`{"status": true, "data": {"access_token": "tok-xyz"}}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second, nil)

		// Act
		token, err := client.Login(context.Background(), models.RoleDistributor, "dist-1", "pw")

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "tok-xyz", token)
	})

	t.Run("Missing Token In Response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status": true, "data": {}}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second, nil)

		_, err := client.Login(context.Background(), models.RoleDistributor, "dist-1", "pw")

		var malformed *MalformedResponseError
		assert.ErrorAs(t, err, &malformed)
	})
}

func TestListEntities(t *testing.T) {
	t.Run("Normalizes Mixed Field Types", func(t *testing.T) {
		// Arrange: numeric ids, string blocked flag, balance key variants.
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/retailer/get/distributor/d1", r.URL.Path)
			assert.Equal(t, "500", r.URL.Query().Get("limit"))
			assert.Equal(t, "0", r.URL.Query().Get("offset"))
			w.Write([]byte(`{"status": "success", "data": {"retailers": [
				{"id": 7, "name": "Alpha", "phone": "111", "wallet_balance": "42.50", "blocked": "0"},
				{"id": "8", "name": "Beta", "phone": 222, "balance": 10, "blocked": 1}
			]}}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second, nil)

		// Act
		entities, err := client.ListEntities(context.Background(), models.RoleRetailer, models.RoleDistributor, "d1", 500, 0)

		// Assert
		assert.NoError(t, err)
		assert.Len(t, entities, 2)
		assert.Equal(t, "7", entities[0].ID)
		assert.Equal(t, models.RoleRetailer, entities[0].Role)
		assert.True(t, entities[0].WalletBalance.Equal(decimal.RequireFromString("42.50")))
		assert.False(t, entities[0].Blocked)
		assert.Equal(t, "222", entities[1].Phone)
		assert.True(t, entities[1].WalletBalance.Equal(decimal.NewFromInt(10)))
		assert.True(t, entities[1].Blocked)
	})

	t.Run("Empty List Is Valid", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status": true, "data": {"retailers": []}}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second, nil)

		entities, err := client.ListEntities(context.Background(), models.RoleRetailer, models.RoleDistributor, "d1", 500, 0)

		assert.NoError(t, err)
		assert.Empty(t, entities)
	})
}

func TestGetEntity(t *testing.T) {
	t.Run("Flat Record", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/retailer/get/retailer/r1", r.URL.Path)
			w.Write([]byte(`{"status": true, "data": {"id": "r1", "name": "Alpha", "wallet_balance": "5"}}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second, nil)

		entity, err := client.GetEntity(context.Background(), models.RoleRetailer, "r1")

		assert.NoError(t, err)
		assert.Equal(t, "r1", entity.ID)
		assert.True(t, entity.WalletBalance.Equal(decimal.NewFromInt(5)))
	})

	t.Run("Nested Record", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status": true, "data": {"retailer": {"id": "r1", "name": "Alpha"}}}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second, nil)

		entity, err := client.GetEntity(context.Background(), models.RoleRetailer, "r1")

		assert.NoError(t, err)
		assert.Equal(t, "Alpha", entity.Name)
	})
}

func TestCreateTransferCall(t *testing.T) {
	// Arrange: the amount must cross the wire as a fixed two-decimal string.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fund_transfer/create", r.URL.Path)

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "1200.50", body["amount"])
		assert.Equal(t, "d1", body["from_id"])
		assert.Equal(t, "r1", body["to_id"])
		assert.NotEmpty(t, body["client_ref"])

		w.Write([]byte(`{"status": true, "message": "Transfer successful"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, nil)

	// Act
	message, err := client.CreateTransfer(context.Background(), &models.TransferRequest{
		FromID:    "d1",
		ToID:      "r1",
		Amount:    decimal.RequireFromString("1200.5"),
		Remarks:   "Fund transfer",
		ClientRef: "ref-1",
	})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "Transfer successful", message)
}

func TestListFundRequestsCall(t *testing.T) {
	t.Run("Maps Rows And Filters", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/fund_request/get/distributor/d1", r.URL.Path)
			assert.Equal(t, "2025-05-01", r.URL.Query().Get("from"))
			assert.Equal(t, "PENDING", r.URL.Query().Get("status"))
			assert.Equal(t, "10", r.URL.Query().Get("limit"))
			w.Write([]byte(`{"status": true, "data": {"total": 23, "fund_requests": [
				{"id": 5, "amount": "1000.00", "utr": "UTR-9", "status": "pending", "created_at": "2025-05-02 10:30:00"}
			]}}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second, nil)

		// Act
		rows, total, err := client.ListFundRequests(context.Background(), models.RoleDistributor, "d1", models.ListQuery{
			Limit:  10,
			From:   time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			Status: "PENDING",
		})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 23, total)
		assert.Len(t, rows, 1)
		assert.Equal(t, "5", rows[0].ID)
		assert.Equal(t, "UTR-9", rows[0].Reference)
		assert.Equal(t, models.FundRequestPending, rows[0].Status)
		assert.Equal(t, 2025, rows[0].CreatedAt.Year())
	})

	t.Run("Missing Total Falls Back", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status": true, "data": {"fund_requests": [{"id": "1"}, {"id": "2"}]}}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second, nil)

		_, total, err := client.ListFundRequests(context.Background(), models.RoleDistributor, "d1", models.ListQuery{Limit: 10, Offset: 20})

		assert.NoError(t, err)
		assert.Equal(t, 22, total)
	})
}
