package service_test

import (
	"context"
	"errors"
	"testing"

	memberdomain "github.com/teamnine/humanofdelivery/backend/internal/member/domain"
	memberservice "github.com/teamnine/humanofdelivery/backend/internal/member/service"
	menudomain "github.com/teamnine/humanofdelivery/backend/internal/menu/domain"
	menuservice "github.com/teamnine/humanofdelivery/backend/internal/menu/service"
	"github.com/teamnine/humanofdelivery/backend/internal/order/domain"
	orderrepo "github.com/teamnine/humanofdelivery/backend/internal/order/repository"
	"github.com/teamnine/humanofdelivery/backend/internal/order/service"
	storedomain "github.com/teamnine/humanofdelivery/backend/internal/store/domain"
	storeservice "github.com/teamnine/humanofdelivery/backend/internal/store/service"
)

func TestOrderService_Place_Success(t *testing.T) {
	svc, orders, stores, menus, members := setupOrderService(t)

	members.findByEmailFunc = func(ctx context.Context, email string) (memberdomain.Member, error) {
		return activeMember(7, email, memberdomain.RoleUser), nil
	}
	stores.findByIDFunc = func(ctx context.Context, id int64) (storedomain.Store, error) {
		return storedomain.Store{ID: id, Name: "shop", Status: storedomain.StatusOpen, OwnerID: 2}, nil
	}
	menus.findByIDFunc = func(ctx context.Context, id int64) (menudomain.Menu, error) {
		return menudomain.Menu{ID: id, StoreID: 10, Name: "fried chicken", Price: 18000, Status: menudomain.StatusOnSale}, nil
	}

	var created domain.Order
	orders.createFunc = func(ctx context.Context, order domain.Order) (domain.Order, error) {
		created = order
		order.ID = 100
		return order, nil
	}

	view, err := svc.Place(context.Background(), "kim@example.com", service.PlaceInput{StoreID: 10, MenuID: 20})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if view.ID != 100 {
		t.Errorf("expected order id 100, got %d", view.ID)
	}

	if created.MenuName != "fried chicken" {
		t.Errorf("expected menu name snapshotted, got %s", created.MenuName)
	}

	if created.Status != domain.StatusOrdered {
		t.Errorf("expected initial status ORDERED, got %s", created.Status)
	}

	if created.UserID != 7 {
		t.Errorf("expected order bound to user 7, got %d", created.UserID)
	}
}

func TestOrderService_Place_OwnerDenied(t *testing.T) {
	svc, _, _, _, members := setupOrderService(t)

	members.findByEmailFunc = func(ctx context.Context, email string) (memberdomain.Member, error) {
		return activeMember(2, email, memberdomain.RoleOwner), nil
	}

	_, err := svc.Place(context.Background(), "lee@example.com", service.PlaceInput{StoreID: 10, MenuID: 20})

	if !errors.Is(err, memberservice.ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestOrderService_Place_ClosedStore(t *testing.T) {
	svc, _, stores, _, members := setupOrderService(t)

	members.findByEmailFunc = func(ctx context.Context, email string) (memberdomain.Member, error) {
		return activeMember(7, email, memberdomain.RoleUser), nil
	}
	stores.findByIDFunc = func(ctx context.Context, id int64) (storedomain.Store, error) {
		return storedomain.Store{ID: id, Status: storedomain.StatusClosed, OwnerID: 2}, nil
	}

	_, err := svc.Place(context.Background(), "kim@example.com", service.PlaceInput{StoreID: 10, MenuID: 20})

	if !errors.Is(err, storeservice.ErrStoreClosed) {
		t.Errorf("expected ErrStoreClosed, got %v", err)
	}
}

func TestOrderService_Place_MenuNotAvailable(t *testing.T) {
	svc, _, stores, menus, members := setupOrderService(t)

	members.findByEmailFunc = func(ctx context.Context, email string) (memberdomain.Member, error) {
		return activeMember(7, email, memberdomain.RoleUser), nil
	}
	stores.findByIDFunc = func(ctx context.Context, id int64) (storedomain.Store, error) {
		return storedomain.Store{ID: id, Status: storedomain.StatusOpen, OwnerID: 2}, nil
	}

	t.Run("sold out", func(t *testing.T) {
		menus.findByIDFunc = func(ctx context.Context, id int64) (menudomain.Menu, error) {
			return menudomain.Menu{ID: id, StoreID: 10, Status: menudomain.StatusSoldOut}, nil
		}

		_, err := svc.Place(context.Background(), "kim@example.com", service.PlaceInput{StoreID: 10, MenuID: 20})

		if !errors.Is(err, menuservice.ErrMenuNotAvailable) {
			t.Errorf("expected ErrMenuNotAvailable, got %v", err)
		}
	})

	t.Run("belongs to another store", func(t *testing.T) {
		menus.findByIDFunc = func(ctx context.Context, id int64) (menudomain.Menu, error) {
			return menudomain.Menu{ID: id, StoreID: 99, Status: menudomain.StatusOnSale}, nil
		}

		_, err := svc.Place(context.Background(), "kim@example.com", service.PlaceInput{StoreID: 10, MenuID: 20})

		if !errors.Is(err, menuservice.ErrMenuNotAvailable) {
			t.Errorf("expected ErrMenuNotAvailable, got %v", err)
		}
	})
}

func TestOrderService_Place_DeactivatedPrincipal(t *testing.T) {
	svc, _, _, _, members := setupOrderService(t)

	members.findByEmailFunc = func(ctx context.Context, email string) (memberdomain.Member, error) {
		m := activeMember(7, email, memberdomain.RoleUser)
		m.Status = memberdomain.StatusDeleted
		return m, nil
	}

	_, err := svc.Place(context.Background(), "kim@example.com", service.PlaceInput{StoreID: 10, MenuID: 20})

	if !errors.Is(err, memberservice.ErrUserDeactivated) {
		t.Errorf("expected ErrUserDeactivated, got %v", err)
	}
}

func TestOrderService_UpdateStatus_Success(t *testing.T) {
	svc, orders, stores, _, members := setupOrderService(t)

	members.findByEmailFunc = func(ctx context.Context, email string) (memberdomain.Member, error) {
		return activeMember(2, email, memberdomain.RoleOwner), nil
	}
	orders.findByIDFunc = func(ctx context.Context, id int64) (domain.Order, error) {
		return domain.Order{ID: id, StoreID: 10, UserID: 7, Status: domain.StatusOrdered}, nil
	}
	stores.findByIDFunc = func(ctx context.Context, id int64) (storedomain.Store, error) {
		return storedomain.Store{ID: id, OwnerID: 2, Status: storedomain.StatusOpen}, nil
	}

	view, err := svc.UpdateStatus(context.Background(), "lee@example.com", 100, domain.StatusAccepted)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if view.Status != domain.StatusAccepted {
		t.Errorf("expected status ACCEPTED, got %s", view.Status)
	}
}

func TestOrderService_UpdateStatus_NotOwner(t *testing.T) {
	svc, orders, stores, _, members := setupOrderService(t)

	members.findByEmailFunc = func(ctx context.Context, email string) (memberdomain.Member, error) {
		return activeMember(3, email, memberdomain.RoleOwner), nil
	}
	orders.findByIDFunc = func(ctx context.Context, id int64) (domain.Order, error) {
		return domain.Order{ID: id, StoreID: 10, UserID: 7, Status: domain.StatusOrdered}, nil
	}
	stores.findByIDFunc = func(ctx context.Context, id int64) (storedomain.Store, error) {
		return storedomain.Store{ID: id, OwnerID: 2, Status: storedomain.StatusOpen}, nil
	}

	_, err := svc.UpdateStatus(context.Background(), "other@example.com", 100, domain.StatusAccepted)

	if !errors.Is(err, memberservice.ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestOrderService_UpdateStatus_InvalidTransition(t *testing.T) {
	svc, orders, stores, _, members := setupOrderService(t)

	members.findByEmailFunc = func(ctx context.Context, email string) (memberdomain.Member, error) {
		return activeMember(2, email, memberdomain.RoleOwner), nil
	}
	orders.findByIDFunc = func(ctx context.Context, id int64) (domain.Order, error) {
		return domain.Order{ID: id, StoreID: 10, UserID: 7, Status: domain.StatusOrdered}, nil
	}
	stores.findByIDFunc = func(ctx context.Context, id int64) (storedomain.Store, error) {
		return storedomain.Store{ID: id, OwnerID: 2, Status: storedomain.StatusOpen}, nil
	}
	orders.updateStatusFunc = func(ctx context.Context, id int64, status domain.Status) (domain.Order, error) {
		t.Fatal("update must not run for an invalid transition")
		return domain.Order{}, nil
	}

	_, err := svc.UpdateStatus(context.Background(), "lee@example.com", 100, domain.StatusDelivered)

	if !errors.Is(err, service.ErrInvalidOrderStatus) {
		t.Errorf("expected ErrInvalidOrderStatus, got %v", err)
	}
}

func TestOrderService_FindByID_Access(t *testing.T) {
	svc, orders, stores, _, members := setupOrderService(t)

	orders.findByIDFunc = func(ctx context.Context, id int64) (domain.Order, error) {
		return domain.Order{ID: id, StoreID: 10, UserID: 7, Status: domain.StatusOrdered}, nil
	}
	stores.findByIDFunc = func(ctx context.Context, id int64) (storedomain.Store, error) {
		return storedomain.Store{ID: id, OwnerID: 2, Status: storedomain.StatusOpen}, nil
	}

	t.Run("ordering user", func(t *testing.T) {
		members.findByEmailFunc = func(ctx context.Context, email string) (memberdomain.Member, error) {
			return activeMember(7, email, memberdomain.RoleUser), nil
		}

		if _, err := svc.FindByID(context.Background(), "kim@example.com", 100); err != nil {
			t.Errorf("expected access for the ordering user, got %v", err)
		}
	})

	t.Run("store owner", func(t *testing.T) {
		members.findByEmailFunc = func(ctx context.Context, email string) (memberdomain.Member, error) {
			return activeMember(2, email, memberdomain.RoleOwner), nil
		}

		if _, err := svc.FindByID(context.Background(), "lee@example.com", 100); err != nil {
			t.Errorf("expected access for the store owner, got %v", err)
		}
	})

	t.Run("stranger", func(t *testing.T) {
		members.findByEmailFunc = func(ctx context.Context, email string) (memberdomain.Member, error) {
			return activeMember(99, email, memberdomain.RoleUser), nil
		}

		_, err := svc.FindByID(context.Background(), "stranger@example.com", 100)

		if !errors.Is(err, memberservice.ErrPermissionDenied) {
			t.Errorf("expected ErrPermissionDenied, got %v", err)
		}
	})
}

func TestOrderService_FindByID_NotFound(t *testing.T) {
	svc, orders, _, _, members := setupOrderService(t)

	members.findByEmailFunc = func(ctx context.Context, email string) (memberdomain.Member, error) {
		return activeMember(7, email, memberdomain.RoleUser), nil
	}
	orders.findByIDFunc = func(ctx context.Context, id int64) (domain.Order, error) {
		return domain.Order{}, orderrepo.ErrOrderNotFound
	}

	_, err := svc.FindByID(context.Background(), "kim@example.com", 999)

	if !errors.Is(err, service.ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}
}
