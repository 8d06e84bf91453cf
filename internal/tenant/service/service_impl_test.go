package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/chowstack/chowstack/internal/tenant/domain"
	"github.com/chowstack/chowstack/internal/tenant/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) Invalidate() { c.calls++ }

func newService(t *testing.T, name string) (domain.Service, *countingInvalidator, *gorm.DB) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Tenant{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	inv := &countingInvalidator{}
	return NewService(conn, repository.NewRepository(conn), node, inv), inv, conn
}

func TestCreateSlugsShortName(t *testing.T) {
	svc, inv, _ := newService(t, "tenantsvc_create")
	ctx := context.Background()

	resp, err := svc.Create(ctx, domain.CreateTenantRequest{
		Name:      "Gold Chopsticks",
		ShortName: "Gold Chopsticks!",
	})
	require.NoError(t, err)

	assert.Equal(t, "gold-chopsticks", resp.ShortName)
	assert.Equal(t, "Gold Chopsticks", resp.Name)
	assert.True(t, resp.Active)
	assert.Equal(t, 1, inv.calls)
}

func TestCreateDefaultsShortNameFromName(t *testing.T) {
	svc, _, _ := newService(t, "tenantsvc_default")

	resp, err := svc.Create(context.Background(), domain.CreateTenantRequest{Name: "Pizza Palace"})
	require.NoError(t, err)
	assert.Equal(t, "pizza-palace", resp.ShortName)
}

func TestCreateValidation(t *testing.T) {
	svc, _, _ := newService(t, "tenantsvc_valid")
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateTenantRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(ctx, domain.CreateTenantRequest{Name: "Pho Real", CustomDomain: "not a domain"})
	assert.ErrorIs(t, err, domain.ErrInvalidDomain)

	_, err = svc.Create(ctx, domain.CreateTenantRequest{Name: "Pho Real", CustomDomain: "nodots"})
	assert.ErrorIs(t, err, domain.ErrInvalidDomain)
}

func TestCreateRejectsDuplicateShortName(t *testing.T) {
	svc, _, _ := newService(t, "tenantsvc_dup")
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateTenantRequest{Name: "Gold Chopsticks"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateTenantRequest{Name: "Gold Chopsticks"})
	assert.ErrorIs(t, err, domain.ErrShortNameTaken)
}

func TestUpdateNormalizesDomain(t *testing.T) {
	svc, inv, _ := newService(t, "tenantsvc_update")
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateTenantRequest{Name: "Gold Chopsticks"})
	require.NoError(t, err)

	newDomain := "Orders.GoldChopsticks.COM"
	updated, err := svc.Update(ctx, created.ID, domain.UpdateTenantRequest{CustomDomain: &newDomain})
	require.NoError(t, err)
	require.NotNil(t, updated.CustomDomain)
	assert.Equal(t, "orders.goldchopsticks.com", *updated.CustomDomain)

	// create + update
	assert.Equal(t, 2, inv.calls)
}

func TestUpdateUnknownTenant(t *testing.T) {
	svc, _, _ := newService(t, "tenantsvc_unknown")

	name := "New Name"
	_, err := svc.Update(context.Background(), "12345", domain.UpdateTenantRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrTenantNotFound)

	_, err = svc.Update(context.Background(), "garbage", domain.UpdateTenantRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrInvalidTenant)
}

func TestDeactivateFlipsFlagAndInvalidates(t *testing.T) {
	svc, inv, conn := newService(t, "tenantsvc_deactivate")
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateTenantRequest{Name: "Gold Chopsticks"})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, created.ID))
	assert.Equal(t, 2, inv.calls)

	var tenant domain.Tenant
	require.NoError(t, conn.First(&tenant, "short_name = ?", "gold-chopsticks").Error)
	assert.False(t, tenant.Active)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}
