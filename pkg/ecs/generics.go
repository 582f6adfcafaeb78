package ecs

import "reflect"

// typeOf 返回类型参数对应的 reflect.Type（接口类型也能正确取到）
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// AddComponent 为实体添加组件，同类型组件会被覆盖。
// 实体不存在时返回 false。
func AddComponent[T any](em *EntityManager, id EntityID, component T) bool {
	return em.add(id, typeOf[T](), component)
}

// GetComponent 查询实体的组件
//
// 用法:
//
//	flight, ok := ecs.GetComponent[*components.FlightComponent](em, id)
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	comp, ok := em.get(id, typeOf[T]())
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := comp.(T)
	return typed, ok
}

// HasComponent 检查实体是否拥有组件 T
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	_, ok := em.get(id, typeOf[T]())
	return ok
}

// RemoveComponent 移除实体的组件 T
func RemoveComponent[T any](em *EntityManager, id EntityID) {
	em.remove(id, typeOf[T]())
}

// GetEntitiesWith1 查询拥有组件 T1 的实体
func GetEntitiesWith1[T1 any](em *EntityManager) []EntityID {
	return em.query(typeOf[T1]())
}

// GetEntitiesWith2 查询同时拥有 T1、T2 的实体
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	return em.query(typeOf[T1](), typeOf[T2]())
}

// GetEntitiesWith3 查询同时拥有 T1、T2、T3 的实体
func GetEntitiesWith3[T1, T2, T3 any](em *EntityManager) []EntityID {
	return em.query(typeOf[T1](), typeOf[T2](), typeOf[T3]())
}
