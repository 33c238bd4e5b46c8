package service

import (
	"context"

	"jr-escala/backend/internal/model"
	"jr-escala/backend/internal/repository"
	pkgerrors "jr-escala/backend/pkg/errors"
)

// ── 人员 / 车辆引用校验 ──

var (
	ErrSameDriverHelper   = pkgerrors.Validation("司机与助手不能为同一人")
	ErrCrewNotRegistered  = pkgerrors.Validation("指定人员不存在")
	ErrCrewInactive       = pkgerrors.Validation("指定人员已停用")
	ErrCrewRoleMismatch   = pkgerrors.Validation("指定人员不能担任该角色")
	ErrTruckNotRegistered = pkgerrors.Validation("车辆未登记")
	ErrTruckInactive      = pkgerrors.Validation("车辆已停用")
	ErrCrewRequired       = pkgerrors.Validation("至少需要指定一名人员")
)

// checkCrewMember id 为 nil 时跳过；role 为空时只校验存在与启用
func checkCrewMember(ctx context.Context, repo *repository.Repository, id *int64, role string) error {
	if id == nil {
		return nil
	}
	c, err := repo.Collaborator.GetByID(ctx, *id)
	if err != nil {
		if isNotFound(err) {
			return ErrCrewNotRegistered
		}
		return err
	}
	if !c.Active {
		return ErrCrewInactive
	}
	if role != "" && !c.CanServeAs(role) {
		return ErrCrewRoleMismatch
	}
	return nil
}

// checkCrew 司机 / 助手角色与互斥校验
func checkCrew(ctx context.Context, repo *repository.Repository, driverID, helperID *int64) error {
	if model.SameID(driverID, helperID) {
		return ErrSameDriverHelper
	}
	if err := checkCrewMember(ctx, repo, driverID, model.RoleDriver); err != nil {
		return err
	}
	return checkCrewMember(ctx, repo, helperID, model.RoleHelper)
}

// checkTruck 返回规范化车牌；plate 为 nil 时返回 nil
func checkTruck(ctx context.Context, repo *repository.Repository, plate *string) (*string, error) {
	p := model.NormalizePlatePtr(plate)
	if p == nil {
		return nil, nil
	}
	t, err := repo.Truck.GetByPlate(ctx, *p)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTruckNotRegistered
		}
		return nil, err
	}
	if !t.Active {
		return nil, ErrTruckInactive
	}
	return p, nil
}

// suppressLabel 记录某日线路已被手动移除，模板生成时跳过
func suppressLabel(ctx context.Context, repo *repository.Repository, a *model.RouteAssignment) error {
	return repo.SuppressedRoute.Create(ctx, &model.SuppressedRoute{
		Date:        a.Date,
		RouteNumber: a.RouteNumber,
		Destination: a.Destination,
	})
}
