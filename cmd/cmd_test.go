package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/marcus/tailor/internal/client"
	"github.com/marcus/tailor/internal/config"
	"github.com/marcus/tailor/internal/models"
	"github.com/marcus/tailor/internal/pager"
	"github.com/marcus/tailor/internal/statusflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReport serves items a page at a time and records what was asked of it
type fakeReport struct {
	mu      sync.Mutex
	items   []models.PendingItem
	pages   []int
	deletes []string
}

func (f *fakeReport) requestedPages() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.pages...)
}

func (f *fakeReport) deleted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deletes...)
}

func (f *fakeReport) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.Method == http.MethodDelete {
		id := strings.TrimPrefix(r.URL.Path, "/v1/sales-order-items/")
		f.deletes = append(f.deletes, id)
		for i, it := range f.items {
			if it.ID == id {
				f.items = append(f.items[:i:i], f.items[i+1:]...)
				break
			}
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	f.pages = append(f.pages, page)

	start := min((page-1)*perPage, len(f.items))
	end := min(start+perPage, len(f.items))
	last := max((len(f.items)+perPage-1)/perPage, 1)
	json.NewEncoder(w).Encode(models.PendingPage{
		Data: f.items[start:end],
		PaginatorInfo: models.PaginatorInfo{
			Total: len(f.items), PerPage: perPage, CurrentPage: page, LastPage: last,
			HasMorePages: page < last,
		},
	})
}

func reportServer(t *testing.T, items []models.PendingItem) (*client.Client, *fakeReport) {
	t.Helper()
	fake := &fakeReport{items: items}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	c := client.New(srv.URL, "secret")
	c.HTTP = srv.Client()
	return c, fake
}

func fiveItems() []models.PendingItem {
	var items []models.PendingItem
	for i, id := range []string{"a", "b", "c", "d", "e"} {
		items = append(items, models.PendingItem{
			ID:          "i" + id,
			OrderID:     "o" + strconv.Itoa(i/2),
			ProductName: "Kurta " + id,
			StatusID:    models.StatusPending,
		})
	}
	return items
}

func TestFindItemPagesUntilMatch(t *testing.T) {
	api, fake := reportServer(t, fiveItems())
	loader := pager.New(api, 2)

	item, err := findItem(context.Background(), loader, "o2-ie")
	require.NoError(t, err)
	assert.Equal(t, "ie", item.ID)
	assert.Equal(t, []int{1, 2, 3}, fake.requestedPages())
}

func TestFindItemStopsAtFirstMatch(t *testing.T) {
	api, fake := reportServer(t, fiveItems())
	loader := pager.New(api, 2)

	item, err := findItem(context.Background(), loader, "ib")
	require.NoError(t, err)
	assert.Equal(t, "o0", item.OrderID)
	assert.Equal(t, []int{1}, fake.requestedPages())
}

func TestFindItemNotFound(t *testing.T) {
	api, fake := reportServer(t, fiveItems())
	loader := pager.New(api, 2)

	_, err := findItem(context.Background(), loader, "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, client.ErrNotFound))
	assert.Equal(t, []int{1, 2, 3}, fake.requestedPages(), "no fetch past the last page")
}

func TestDeleteOne(t *testing.T) {
	items := fiveItems()
	items[1].JobOrderStatus = []models.JobOrderStatus{{StatusName: models.JobOrderStatusCompleted}}
	api, fake := reportServer(t, items)
	flow := statusflow.New(api, nil)

	deleted, err := deleteOne(api, flow, 2, "", "o2-ie", true)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, "ie", deleted.ID)
	assert.Equal(t, []string{"ie"}, fake.deleted())
	// lookup walked pages 1-3, then the reload fetched page 1 again
	assert.Equal(t, []int{1, 2, 3, 1}, fake.requestedPages())

	_, err = deleteOne(api, flow, 2, "", "ib", true)
	assert.ErrorIs(t, err, statusflow.ErrDeleteLocked)
	assert.Equal(t, []string{"ie"}, fake.deleted(), "locked item never reaches the API")
}

func TestStatusValue(t *testing.T) {
	var v statusValue
	assert.Equal(t, "", v.String())
	require.NoError(t, v.Set("in-progress"))
	assert.Equal(t, models.StatusInProgress, v.status)
	require.NoError(t, v.Set("4"))
	assert.Equal(t, "Cancelled", v.String())
	assert.Error(t, v.Set("shipped"))
	assert.Equal(t, "status", v.Type())
}

func TestDeletePrompt(t *testing.T) {
	items := fiveItems()
	// ia and ib share order o0; ie is alone on o2
	assert.NotContains(t, deletePrompt(items, items[0]), "whole order")
	assert.Contains(t, deletePrompt(items, items[4]), "whole order")
}

func TestProfileFormValidate(t *testing.T) {
	valid := profileForm{FirstName: "Asha", LastName: "Rao", Email: "asha@shop.in", Gender: "F"}

	tests := []struct {
		name   string
		mutate func(*profileForm)
		want   error
	}{
		{"valid", func(*profileForm) {}, nil},
		{"blank first name", func(f *profileForm) { f.FirstName = "  " }, errFirstNameRequired},
		{"missing last name", func(f *profileForm) { f.LastName = "" }, errLastNameRequired},
		{"email without at", func(f *profileForm) { f.Email = "asha.shop.in" }, errEmailInvalid},
		{"email without domain", func(f *profileForm) { f.Email = "asha@" }, errEmailInvalid},
		{"bad gender", func(f *profileForm) { f.Gender = "X" }, errGenderInvalid},
		{"unset gender", func(f *profileForm) { f.Gender = "" }, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := valid
			tc.mutate(&f)
			err := f.Validate()
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestProfileFormApplyTrims(t *testing.T) {
	f := profileForm{FirstName: " Asha ", LastName: "Rao", Email: " asha@shop.in", Gender: "F", Department: "Cutting "}
	p := f.Apply(models.UserProfile{ID: "u1", Role: "Manager"})
	assert.Equal(t, "u1", p.ID)
	assert.Equal(t, "Manager", p.Role)
	assert.Equal(t, "Asha", p.FirstName)
	assert.Equal(t, "asha@shop.in", p.Email)
	assert.Equal(t, models.GenderFemale, p.Gender)
	assert.Equal(t, "Cutting", p.Department)
	assert.Equal(t, "AR", p.Initials())
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "", maskToken(""))
	assert.Equal(t, "***", maskToken("abc"))
	assert.Equal(t, "******wxyz", maskToken("abcdefwxyz"))
}

func TestConfigSetCommand(t *testing.T) {
	home := t.TempDir()

	rootCmd.SetArgs([]string{"--home", home, "config", "set", "per_page", "25"})
	require.NoError(t, rootCmd.Execute())

	cfg, err := config.Load(home)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.PerPage)

	rootCmd.SetArgs([]string{"--home", home, "config", "set", "per_page", "0"})
	assert.Error(t, rootCmd.Execute())
	cfg, err = config.Load(home)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.PerPage, "rejected value leaves config unchanged")
}
