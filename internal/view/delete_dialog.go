package view

import (
	"context"
	"errors"
	"fmt"

	"github.com/tuannt39-study/jhipster-sample/internal/client"
)

var ErrDialogClosed = errors.New("delete dialog is not open")

// DeleteDialog 删除确认框
type DeleteDialog[T any, K comparable] struct {
	heading string
	reducer *client.Reducer[T, K]
	nav     *Navigator
	routes  Routes

	open bool
	key  K
}

func NewDeleteDialog[T any, K comparable](heading string, reducer *client.Reducer[T, K], nav *Navigator, routes Routes) *DeleteDialog[T, K] {
	return &DeleteDialog[T, K]{heading: heading, reducer: reducer, nav: nav, routes: routes}
}

func (d *DeleteDialog[T, K]) Heading() string { return "Confirm delete operation" }

func (d *DeleteDialog[T, K]) Question() string {
	return fmt.Sprintf("Are you sure you want to delete %s %v?", d.heading, d.key)
}

func (d *DeleteDialog[T, K]) IsOpen() bool { return d.open }

// Open 打开对话框时先 GET 一次实体
func (d *DeleteDialog[T, K]) Open(ctx context.Context, id K) error {
	d.nav.Push(d.routes.Delete(id))
	if _, err := d.reducer.GetEntity(ctx, id); err != nil {
		return err
	}
	d.open = true
	d.key = id
	return nil
}

// Confirm DELETE 成功后跳回列表
func (d *DeleteDialog[T, K]) Confirm(ctx context.Context) error {
	if !d.open {
		return ErrDialogClosed
	}
	if err := d.reducer.DeleteEntity(ctx, d.key); err != nil {
		return err
	}
	d.open = false
	d.nav.Push(d.routes.List())
	return nil
}

func (d *DeleteDialog[T, K]) Cancel() {
	d.open = false
	d.nav.Push(d.routes.List())
}
