// Package shopkit 是一个电商商城推荐工具包（Shop Recommender Kit）。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Filter → Rank → ReRank）
// - 隐式反馈驱动: 浏览/购买/评分事件统一沉淀为 Interaction，按需物化为用户×商品矩阵
// - 可降级: 冷启动、空数据、矩阵超限一律回退到热门榜，推荐永远 best-effort
// - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 策略驱动
package shopkit

import "github.com/rushteam/shopkit/pipeline"

// 轻量 facade：便于用户直接 import "shopkit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
