package kinematics

import (
	"testing"

	"go.viam.com/test"
)

func TestConfigurationFloatsRoundtrip(t *testing.T) {
	vs := []float64{1, 2, 3}
	c := FloatsToConfiguration(vs)
	test.That(t, c.Floats(), test.ShouldResemble, vs)
}

func TestConfigurationCloneIsIndependent(t *testing.T) {
	c := FloatsToConfiguration([]float64{1, 2})
	clone := c.Clone()
	clone[0].Value = 99
	test.That(t, c[0].Value, test.ShouldEqual, 1.0)
}

func TestLinkIDString(t *testing.T) {
	test.That(t, LinkIndex(3).String(), test.ShouldEqual, "#3")
	test.That(t, LinkName("wrist").String(), test.ShouldEqual, "wrist")
}
