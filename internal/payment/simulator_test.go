package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFastSimulator devolve um simulador com duração fixa e curta, para
// testes determinísticos.
func newFastSimulator(total, tick time.Duration) *Simulator {
	s := NewSimulator(nil)
	s.MinDuration = total
	s.MaxDuration = total
	s.Tick = tick
	s.Linger = 10 * time.Millisecond
	s.RandInt = func(n int) int { return 0 }
	return s
}

func TestSimulatorReachesSuccess(t *testing.T) {
	s := newFastSimulator(200*time.Millisecond, 10*time.Millisecond)

	proc := s.Start(7500)
	defer proc.Close()

	var last float64
	deadline := time.After(2 * time.Second)

	for {
		select {
		case pct := <-proc.Progress():
			// progresso nunca regride nem passa de 100
			require.GreaterOrEqual(t, pct, last)
			require.LessOrEqual(t, pct, 100.0)
			last = pct

		case out := <-proc.Outcome():
			// o último progresso pode ainda estar pendente no canal
			select {
			case pct := <-proc.Progress():
				require.GreaterOrEqual(t, pct, last)
				last = pct
			default:
			}

			assert.Equal(t, OutcomeSuccess, out)
			assert.Equal(t, 100.0, last)

			select {
			case <-proc.Done():
			case <-time.After(2 * time.Second):
				t.Fatal("process never finished after success")
			}
			return

		case <-deadline:
			t.Fatal("simulation never completed")
		}
	}
}

func TestSimulatorCloseBeforeCompletionAbandons(t *testing.T) {
	// duração longa: o Close chega muito antes da conclusão
	s := newFastSimulator(10*time.Second, 10*time.Millisecond)

	proc := s.Start(7500)
	proc.Close()

	select {
	case out := <-proc.Outcome():
		assert.Equal(t, OutcomeAbandoned, out)
	case <-time.After(2 * time.Second):
		t.Fatal("no outcome after close")
	}

	select {
	case <-proc.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("process never finished after abandon")
	}
}

func TestSimulatorCloseIsIdempotent(t *testing.T) {
	s := newFastSimulator(10*time.Second, 10*time.Millisecond)

	proc := s.Start(100)
	proc.Close()
	proc.Close()
	proc.Close()

	select {
	case out := <-proc.Outcome():
		assert.Equal(t, OutcomeAbandoned, out)
	case <-time.After(2 * time.Second):
		t.Fatal("no outcome after close")
	}
}

func TestSimulatorCloseAfterSuccessOnlyShortensLinger(t *testing.T) {
	s := newFastSimulator(50*time.Millisecond, 10*time.Millisecond)
	s.Linger = 10 * time.Second

	proc := s.Start(100)

	// drena progresso até o desfecho
	for {
		select {
		case <-proc.Progress():
		case out := <-proc.Outcome():
			require.Equal(t, OutcomeSuccess, out)

			// o sucesso já foi emitido; Close só encerra a espera
			proc.Close()

			select {
			case <-proc.Done():
			case <-time.After(2 * time.Second):
				t.Fatal("close after success did not finish the process")
			}
			return
		case <-time.After(2 * time.Second):
			t.Fatal("simulation never completed")
		}
	}
}

func TestSimulatorPicksDurationWithinRange(t *testing.T) {
	s := NewSimulator(nil)

	// o intervalo default é 10s a 15s; com RandInt fixo no máximo do
	// span, a duração total deve bater no teto
	span := int(s.MaxDuration - s.MinDuration)
	s.RandInt = func(n int) int {
		assert.Equal(t, span+1, n)
		return n - 1
	}

	proc := s.Start(100)
	proc.Close()
	<-proc.Done()
}
