package memory

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"crmapi/internal/model"
	"crmapi/internal/repository"

	"github.com/stretchr/testify/assert"
)

func TestStore_CreateAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerMemory()

	first, err := repo.Create(ctx, &model.Customer{Name: "Alice"})
	assert.NoError(t, err)
	second, err := repo.Create(ctx, &model.Customer{Name: "Bob"})
	assert.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
}

func TestStore_FindByID(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerMemory()

	created, _ := repo.Create(ctx, &model.Customer{Name: "Alice", Email: "alice@example.com"})

	t.Run("found", func(t *testing.T) {
		got, err := repo.FindByID(ctx, created.ID)
		assert.NoError(t, err)
		assert.Equal(t, "Alice", got.Name)
	})

	t.Run("missing row maps to sql.ErrNoRows", func(t *testing.T) {
		_, err := repo.FindByID(ctx, 999)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestStore_FindByIDReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerMemory()

	created, _ := repo.Create(ctx, &model.Customer{Name: "Alice"})

	got, _ := repo.FindByID(ctx, created.ID)
	got.Name = "mutated"

	again, _ := repo.FindByID(ctx, created.ID)
	assert.Equal(t, "Alice", again.Name)
}

func TestStore_ListPagination(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentMemory()

	for i := 0; i < 5; i++ {
		_, err := repo.Create(ctx, &model.Student{Name: "s", Age: 20 + i})
		assert.NoError(t, err)
	}

	res, err := repo.List(ctx, repository.PageQuery{Limit: 2, Offset: 1})
	assert.NoError(t, err)
	assert.Equal(t, 5, res.Total)
	assert.Len(t, res.Items, 2)
	// Newest first: ids 5..1, offset 1 skips id 5.
	assert.Equal(t, int64(4), res.Items[0].ID)
	assert.Equal(t, int64(3), res.Items[1].ID)

	t.Run("offset beyond total returns empty page", func(t *testing.T) {
		res, err := repo.List(ctx, repository.PageQuery{Limit: 10, Offset: 50})
		assert.NoError(t, err)
		assert.Empty(t, res.Items)
		assert.Equal(t, 5, res.Total)
	})
}

func TestStore_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskMemory()

	created, _ := repo.Create(ctx, &model.Task{Title: "write report", Status: model.TaskStatusOpen})

	created.Status = model.TaskStatusDone
	updated, err := repo.Update(ctx, created)
	assert.NoError(t, err)
	assert.Equal(t, model.TaskStatusDone, updated.Status)

	t.Run("missing row maps to sql.ErrNoRows", func(t *testing.T) {
		_, err := repo.Update(ctx, &model.Task{ID: 404, Title: "ghost"})
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerMemory()

	created, _ := repo.Create(ctx, &model.Customer{Name: "Alice"})

	assert.NoError(t, repo.Delete(ctx, created.ID))
	assert.NoError(t, repo.Delete(ctx, created.ID))

	_, err := repo.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestStore_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerMemory()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, &model.Customer{Name: "c"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	res, err := repo.List(ctx, repository.PageQuery{Limit: 100})
	assert.NoError(t, err)
	assert.Equal(t, 50, res.Total)

	// All ids unique
	seen := make(map[int64]bool)
	for _, c := range res.Items {
		assert.False(t, seen[c.ID])
		seen[c.ID] = true
	}
}

func TestOrderMemory_ListByCustomer(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderMemory()

	repo.Create(ctx, &model.Order{CustomerID: 1, AmountCents: 100, Status: model.OrderStatusPending})
	repo.Create(ctx, &model.Order{CustomerID: 2, AmountCents: 200, Status: model.OrderStatusPaid})
	repo.Create(ctx, &model.Order{CustomerID: 1, AmountCents: 300, Status: model.OrderStatusPaid})

	orders, err := repo.ListByCustomer(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	// Newest first
	assert.Equal(t, int64(300), orders[0].AmountCents)
	assert.Equal(t, int64(100), orders[1].AmountCents)
}

func TestCampaignMemory_CountByStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewCampaignMemory()

	repo.Create(ctx, &model.Campaign{Code: "c1", Status: model.CampaignStatusNew})
	repo.Create(ctx, &model.Campaign{Code: "c2", Status: model.CampaignStatusActive})
	repo.Create(ctx, &model.Campaign{Code: "c3", Status: model.CampaignStatusActive})

	counts, err := repo.CountByStatus(ctx)
	assert.NoError(t, err)
	assert.Equal(t, map[string]int{
		model.CampaignStatusNew:    1,
		model.CampaignStatusActive: 2,
	}, counts)
}

func TestWorkerMemory_ListByCampaign(t *testing.T) {
	ctx := context.Background()
	repo := NewWorkerMemory()

	campaignID := int64(7)
	repo.Create(ctx, &model.Worker{Name: "in", CampaignID: &campaignID})
	repo.Create(ctx, &model.Worker{Name: "out"})

	workers, err := repo.ListByCampaign(ctx, campaignID)
	assert.NoError(t, err)
	assert.Len(t, workers, 1)
	assert.Equal(t, "in", workers[0].Name)
}

func TestAttachmentMemory(t *testing.T) {
	ctx := context.Background()
	repo := NewAttachmentMemory()

	now := time.Now().UTC()
	older := model.Attachment{ID: "a-1", TaskID: 1, Filename: "old.txt", CreatedAt: now.Add(-time.Hour)}
	newer := model.Attachment{ID: "a-2", TaskID: 1, Filename: "new.txt", CreatedAt: now}
	other := model.Attachment{ID: "a-3", TaskID: 2, Filename: "other.txt", CreatedAt: now}

	for _, a := range []model.Attachment{older, newer, other} {
		a := a
		_, err := repo.Create(ctx, &a)
		assert.NoError(t, err)
	}

	got, err := repo.FindByID(ctx, "a-1")
	assert.NoError(t, err)
	assert.Equal(t, "old.txt", got.Filename)

	_, err = repo.FindByID(ctx, "nope")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	list, err := repo.ListByTask(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, "new.txt", list[0].Filename)

	assert.NoError(t, repo.Delete(ctx, "a-1"))
	assert.NoError(t, repo.Delete(ctx, "a-1"))
}
