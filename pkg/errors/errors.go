package errors

import "errors"

// ErrOptimisticLock 条件更新冲突：记录状态已被其他操作修改
// 覆班申请的 claim/decide 等条件更新在前置状态不匹配时返回此错误
var ErrOptimisticLock = errors.New("数据已被其他操作修改，请刷新后重试")
