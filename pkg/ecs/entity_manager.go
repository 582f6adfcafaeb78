// Package ecs 提供场景实体与组件的注册表
//
// 飞机、追尾镜头、天空等场景对象都是实体，状态以纯数据组件的形式挂在实体上，
// 由 systems 包中的各个系统按固定顺序读写。
//
// 组件按类型分表存储（类型 → 实体 → 组件），查询时只遍历最小的那张表。
// 对外只暴露泛型接口，调用方不需要接触 reflect。
package ecs

import (
	"reflect"
	"slices"
)

// EntityID 是实体的唯一标识符，0 保留为无效ID
type EntityID uint64

// componentStore 同一类型组件的存储表
type componentStore map[EntityID]any

// EntityManager 管理所有实体和组件
type EntityManager struct {
	nextID   EntityID
	entities map[EntityID]struct{}
	stores   map[reflect.Type]componentStore
	// 待删除的实体，在 RemoveMarkedEntities 时统一清理
	pendingDestroy []EntityID
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:   1,
		entities: make(map[EntityID]struct{}),
		stores:   make(map[reflect.Type]componentStore),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := em.nextID
	em.nextID++
	em.entities[id] = struct{}{}
	return id
}

// DestroyEntity 标记实体待删除（本帧内仍可访问）
func (em *EntityManager) DestroyEntity(id EntityID) {
	if em.Exists(id) {
		em.pendingDestroy = append(em.pendingDestroy, id)
	}
}

// RemoveMarkedEntities 清理所有标记删除的实体及其组件
func (em *EntityManager) RemoveMarkedEntities() {
	for _, id := range em.pendingDestroy {
		delete(em.entities, id)
		for _, store := range em.stores {
			delete(store, id)
		}
	}
	em.pendingDestroy = em.pendingDestroy[:0]
}

// Exists 检查实体是否存在
func (em *EntityManager) Exists(id EntityID) bool {
	_, ok := em.entities[id]
	return ok
}

// Count 返回当前实体数量
func (em *EntityManager) Count() int {
	return len(em.entities)
}

func (em *EntityManager) add(id EntityID, t reflect.Type, component any) bool {
	if !em.Exists(id) {
		return false
	}
	store, ok := em.stores[t]
	if !ok {
		store = make(componentStore)
		em.stores[t] = store
	}
	store[id] = component
	return true
}

func (em *EntityManager) get(id EntityID, t reflect.Type) (any, bool) {
	comp, ok := em.stores[t][id]
	return comp, ok
}

func (em *EntityManager) remove(id EntityID, t reflect.Type) {
	delete(em.stores[t], id)
}

// query 返回同时拥有所有类型组件的实体，按ID（即创建顺序）排序，
// 保证每帧遍历顺序稳定
func (em *EntityManager) query(types ...reflect.Type) []EntityID {
	if len(types) == 0 {
		return nil
	}

	stores := make([]componentStore, len(types))
	for i, t := range types {
		store, ok := em.stores[t]
		if !ok || len(store) == 0 {
			return nil
		}
		stores[i] = store
	}
	slices.SortFunc(stores, func(a, b componentStore) int { return len(a) - len(b) })

	result := make([]EntityID, 0, len(stores[0]))
	for id := range stores[0] {
		hasAll := true
		for _, store := range stores[1:] {
			if _, ok := store[id]; !ok {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}

	slices.Sort(result)
	return result
}
