package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder 业务与 HTTP 指标记录接口
type Recorder interface {
	// ObserveAvailabilityCheck 记录一次占用计算的耗时与结果
	ObserveAvailabilityCheck(d time.Duration, err error)
	// IncConflict 提交时校验发现冲突（resource: driver / helper / truck）
	IncConflict(resource string)
	// AddMaterialized 每周模板生成的派车数量
	AddMaterialized(n int)
	// IncBlockOperation 封锁台账写操作（op: create / remove / reschedule / release / purge）
	IncBlockOperation(op string)
	// ObserveHTTP 记录 HTTP 请求
	ObserveHTTP(method, route string, status int, d time.Duration)
}

// NopRecorder 不记录任何指标
type NopRecorder struct{}

func (NopRecorder) ObserveAvailabilityCheck(time.Duration, error)  {}
func (NopRecorder) IncConflict(string)                             {}
func (NopRecorder) AddMaterialized(int)                            {}
func (NopRecorder) IncBlockOperation(string)                       {}
func (NopRecorder) ObserveHTTP(string, string, int, time.Duration) {}

// PromRecorder 基于 Prometheus 的 Recorder 实现
type PromRecorder struct {
	checks       *prometheus.CounterVec
	checkLatency prometheus.Histogram
	conflicts    *prometheus.CounterVec
	materialized prometheus.Counter
	blockOps     *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
}

// NewPromRecorder 在 reg 上注册指标；reg 为 nil 时使用全局注册器
// 重复注册时复用已存在的采集器
func NewPromRecorder(reg prometheus.Registerer) (*PromRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	checks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_availability_checks_total",
		Help: "Availability computations by outcome",
	}, []string{"success"})
	checkLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "dispatch_availability_check_seconds",
		Help:    "Time spent computing unavailable drivers, helpers and trucks",
		Buckets: prometheus.DefBuckets,
	})
	conflicts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_conflicts_total",
		Help: "Writes rejected because a resource was already occupied",
	}, []string{"resource"})
	materialized := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_routes_materialized_total",
		Help: "Route assignments created from weekly templates",
	})
	blockOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_blocking_operations_total",
		Help: "Blocking ledger write operations",
	}, []string{"op"})
	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})
	httpLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	var err error
	if checks, err = register(reg, checks); err != nil {
		return nil, err
	}
	if checkLatency, err = register(reg, checkLatency); err != nil {
		return nil, err
	}
	if conflicts, err = register(reg, conflicts); err != nil {
		return nil, err
	}
	if materialized, err = register(reg, materialized); err != nil {
		return nil, err
	}
	if blockOps, err = register(reg, blockOps); err != nil {
		return nil, err
	}
	if httpRequests, err = register(reg, httpRequests); err != nil {
		return nil, err
	}
	if httpLatency, err = register(reg, httpLatency); err != nil {
		return nil, err
	}

	return &PromRecorder{
		checks:       checks,
		checkLatency: checkLatency,
		conflicts:    conflicts,
		materialized: materialized,
		blockOps:     blockOps,
		httpRequests: httpRequests,
		httpLatency:  httpLatency,
	}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (p *PromRecorder) ObserveAvailabilityCheck(d time.Duration, err error) {
	p.checks.WithLabelValues(strconv.FormatBool(err == nil)).Inc()
	p.checkLatency.Observe(d.Seconds())
}

func (p *PromRecorder) IncConflict(resource string) {
	p.conflicts.WithLabelValues(resource).Inc()
}

func (p *PromRecorder) AddMaterialized(n int) {
	if n > 0 {
		p.materialized.Add(float64(n))
	}
}

func (p *PromRecorder) IncBlockOperation(op string) {
	p.blockOps.WithLabelValues(op).Inc()
}

func (p *PromRecorder) ObserveHTTP(method, route string, status int, d time.Duration) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.httpLatency.WithLabelValues(method, route).Observe(d.Seconds())
}
