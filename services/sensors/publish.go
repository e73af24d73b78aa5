package sensors

import (
	"envsense-go/bus"
	"envsense-go/errcode"
	"envsense-go/types"
	"envsense-go/x/mathx"
)

// Topics (retained):
//
//	env/<kind>/<sensor>/value   types.TemperatureValue | HumidityValue | PressureValue
//	env/status/<sensor>         types.SensorStatus (down on bus failure, degraded otherwise)
const topicEnv = "env"

func valueTopic(kind types.Kind, sensor string) bus.Topic {
	return bus.T(topicEnv, string(kind), sensor, "value")
}

func statusTopic(sensor string) bus.Topic {
	return bus.T(topicEnv, "status", sensor)
}

// Attach makes every later Update publish its results on conn. A nil conn
// detaches.
func (a *Aggregator) Attach(conn *bus.Connection) {
	a.mu.Lock()
	a.conn = conn
	a.mu.Unlock()
}

func (a *Aggregator) publishLocked(ue *UpdateError) {
	c := a.conn
	if c == nil {
		return
	}

	if ue.Humidity == nil {
		r, ts := a.cur.Humidity, a.cur.HumidityTS
		c.Publish(c.NewMessage(valueTopic(types.KindTemperature, types.SensorAHT20),
			types.TemperatureValue{CentiC: mathx.RoundScaled[int32](float64(r.Temperature), 100), TS: ts}, true))
		c.Publish(c.NewMessage(valueTopic(types.KindHumidity, types.SensorAHT20),
			types.HumidityValue{RHx100: mathx.RoundScaled[uint16](float64(r.Humidity), 100), TS: ts}, true))
	}
	if ue.Pressure == nil {
		r, ts := a.cur.Pressure, a.cur.PressureTS
		c.Publish(c.NewMessage(valueTopic(types.KindTemperature, types.SensorBMP280),
			types.TemperatureValue{CentiC: mathx.RoundScaled[int32](float64(r.Temperature), 100), TS: ts}, true))
		c.Publish(c.NewMessage(valueTopic(types.KindPressure, types.SensorBMP280),
			types.PressureValue{Pa: mathx.RoundScaled[uint32](float64(r.Pressure), 100), TS: ts}, true))
	}

	c.Publish(c.NewMessage(statusTopic(types.SensorAHT20), a.status(ue.Humidity, a.cfg.HumidityAddr), true))
	c.Publish(c.NewMessage(statusTopic(types.SensorBMP280), a.status(ue.Pressure, a.press.Address()), true))
}

func (a *Aggregator) status(err error, addr uint16) types.SensorStatus {
	s := types.SensorStatus{Link: types.LinkUp, Addr: addr, TS: nowMs()}
	switch {
	case err == nil:
	case errcode.IsTransport(err):
		s.Link = types.LinkDown
		s.Error = string(errcode.Of(err))
	default:
		s.Link = types.LinkDegraded
		s.Error = string(errcode.Of(err))
	}
	return s
}
