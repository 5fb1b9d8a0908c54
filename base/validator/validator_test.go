package validator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ValidatorTestSuite struct {
	suite.Suite
}

func (s *ValidatorTestSuite) TestIsValidAddress() {
	tests := []struct {
		desc       string
		address    string
		expIsValid bool
	}{
		{
			desc:       "invalid address - too short",
			address:    "0:abc",
			expIsValid: false,
		},
		{
			desc:       "invalid address - missing workchain",
			address:    "8e86f61b08f66e2b24fec6bd0e3e48196ec99a188b0e4473c4eb6aeea1751aa3",
			expIsValid: false,
		},
		{
			desc:       "valid address - base workchain",
			address:    "0:8e86f61b08f66e2b24fec6bd0e3e48196ec99a188b0e4473c4eb6aeea1751aa3",
			expIsValid: true,
		},
		{
			desc:       "valid address - masterchain",
			address:    "-1:8e86f61b08f66e2b24fec6bd0e3e48196ec99a188b0e4473c4eb6aeea1751aa3",
			expIsValid: true,
		},
		{
			desc:       "invalid address - non hex account",
			address:    "0:zz86f61b08f66e2b24fec6bd0e3e48196ec99a188b0e4473c4eb6aeea1751aa3",
			expIsValid: false,
		},
	}
	for _, t := range tests {
		s.Equal(t.expIsValid, IsValidAddress(t.address), t.desc)
	}
}

func TestValidatorTestSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}
