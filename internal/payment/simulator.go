package payment

import (
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Outcome é o contrato de três saídas de um processador de pagamento.
// Um gateway real entra no lugar do simulador mantendo esta superfície.
type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomeAbandoned Outcome = "abandoned"
	OutcomeFailed    Outcome = "failed"
)

const (
	defaultMinDuration = 10 * time.Second
	defaultMaxDuration = 15 * time.Second
	defaultTick        = 100 * time.Millisecond
	defaultLinger      = 2 * time.Second
)

// Simulator emula a confirmação assíncrona e não determinística de um
// gateway de pagamento, sem chamada de rede: escolhe uma duração total
// aleatória e publica progresso em intervalos fixos até sinalizar sucesso.
type Simulator struct {
	MinDuration time.Duration
	MaxDuration time.Duration
	Tick        time.Duration
	Linger      time.Duration

	// RandInt permite fixar a duração em testes. Default: rand.Intn.
	RandInt func(n int) int

	logger *zap.Logger
}

func NewSimulator(logger *zap.Logger) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{
		MinDuration: defaultMinDuration,
		MaxDuration: defaultMaxDuration,
		Tick:        defaultTick,
		Linger:      defaultLinger,
		RandInt:     rand.Intn,
		logger:      logger,
	}
}

// Process é uma execução em andamento do simulador.
type Process struct {
	progress chan float64
	outcome  chan Outcome
	done     chan struct{}

	cancel    chan struct{}
	closeOnce sync.Once
}

// Progress publica o percentual 0–100. Atualizações podem ser descartadas
// se o consumidor não acompanhar; o valor seguinte sempre é mais recente.
func (p *Process) Progress() <-chan float64 {
	return p.progress
}

// Outcome entrega exatamente um resultado por execução.
func (p *Process) Outcome() <-chan Outcome {
	return p.outcome
}

// Done fecha quando a execução terminou de vez, inclusive a espera de
// leitura pós-sucesso. A UI usa isso para dispensar o modal.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// Close aborta a execução. Antes da conclusão: para o timer e nenhum
// sucesso é emitido. Depois do sucesso: só encurta a espera de dispensa.
func (p *Process) Close() {
	p.closeOnce.Do(func() {
		close(p.cancel)
	})
}

// Start inicia uma execução para o valor informado.
func (s *Simulator) Start(amount float64) *Process {
	total := s.MinDuration
	if span := int(s.MaxDuration - s.MinDuration); span > 0 {
		total += time.Duration(s.RandInt(span + 1))
	}

	p := &Process{
		progress: make(chan float64, 1),
		outcome:  make(chan Outcome, 1),
		done:     make(chan struct{}),
		cancel:   make(chan struct{}),
	}

	s.logger.Debug("payment simulation started",
		zap.Float64("amount", amount),
		zap.Duration("total", total),
	)

	go s.run(p, total)
	return p
}

func (s *Simulator) run(p *Process, total time.Duration) {
	defer close(p.done)

	ticker := time.NewTicker(s.Tick)
	defer ticker.Stop()

	step := float64(s.Tick) / float64(total) * 100
	current := 0.0

	for {
		select {
		case <-p.cancel:
			p.outcome <- OutcomeAbandoned
			s.logger.Debug("payment simulation abandoned",
				zap.Float64("progress", current),
			)
			return

		case <-ticker.C:
			current += step
			if current > 100 {
				current = 100
			}
			publishProgress(p, current)

			if current >= 100 {
				p.outcome <- OutcomeSuccess
				s.logger.Debug("payment simulation succeeded")
				s.lingerThenFinish(p)
				return
			}
		}
	}
}

// lingerThenFinish segura o processo aberto por um instante depois do
// sucesso, para o usuário ler a confirmação antes da dispensa.
func (s *Simulator) lingerThenFinish(p *Process) {
	timer := time.NewTimer(s.Linger)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-p.cancel:
	}
}

func publishProgress(p *Process, value float64) {
	// canal com buffer 1: descarta a leitura antiga se ninguém consumiu
	select {
	case p.progress <- value:
	default:
		select {
		case <-p.progress:
		default:
		}
		select {
		case p.progress <- value:
		default:
		}
	}
}
