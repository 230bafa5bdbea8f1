package testutils

// Fixed addresses shared by package tests.
var (
	TestAddrMember    = "0x1111111111111111111111111111111111111111"
	TestAddrNonMember = "0x2222222222222222222222222222222222222222"
	TestAddrSecond    = "0x3333333333333333333333333333333333333333"
	TestAddrMixedCase = "0xAbCdEf0123456789aBcDeF0123456789AbCdEf01"
)
