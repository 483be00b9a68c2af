package script_test

import (
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/urisc/timing/core"
	"github.com/sarchlab/urisc/script"
)

var _ = Describe("Host", func() {
	var (
		c    *core.Core
		host *script.Host
	)

	BeforeEach(func() {
		c = core.NewCore()
		host = script.NewHost(c)
	})

	AfterEach(func() {
		host.Close()
	})

	It("should assemble, load and run a program", func() {
		Expect(host.RunString(`
			local listing = assemble("addi x1, x0, 5\naddi x2, x1, 1")
			load(listing)
			ran = run(100)
			x2 = reg(2)
			stall_count = stalls()
		`)).To(Succeed())

		Expect(host.Global("x2")).To(Equal(lua.LNumber(6)))
		Expect(host.Global("stall_count")).To(Equal(lua.LNumber(2)))
		Expect(host.Global("ran")).To(Equal(lua.LNumber(32 + 2)))
		Expect(c.GetRegister(2)).To(Equal(uint32(6)))
	})

	It("should report assembly errors as a second result", func() {
		Expect(host.RunString(`listing, msg = assemble("mul x1, x2, x3")`)).To(Succeed())
		Expect(host.Global("listing")).To(Equal(lua.LNil))
		Expect(host.Global("msg").String()).To(ContainSubstring("unknown instruction"))
	})

	It("should step and read the pc", func() {
		Expect(host.RunString(`
			first = step()
			now = pc()
			reset()
			after_reset = pc()
			n = cycles()
		`)).To(Succeed())

		Expect(host.Global("first")).To(Equal(lua.LNumber(0x84)))
		Expect(host.Global("now")).To(Equal(lua.LNumber(0x84)))
		Expect(host.Global("after_reset")).To(Equal(lua.LNumber(0x80)))
		Expect(host.Global("n")).To(Equal(lua.LNumber(0)))
	})

	It("should access registers and memory", func() {
		Expect(host.RunString(`
			setreg(3, -1)
			store_word(0x10, 0xCAFE)
			w = load_word(0x10)
		`)).To(Succeed())

		Expect(c.GetRegister(3)).To(Equal(uint32(0xFFFFFFFF)))
		Expect(c.LoadWord(0x10)).To(Equal(uint32(0xCAFE)))
		Expect(host.Global("w")).To(Equal(lua.LNumber(0xCAFE)))
	})

	It("should raise Lua errors for faults", func() {
		Expect(host.RunString(`load_word(0xFD)`)).To(HaveOccurred())
		Expect(host.RunString(`reg(32)`)).To(HaveOccurred())
		Expect(host.RunString(`load("garbage")`)).To(HaveOccurred())
	})

	It("should run files", func() {
		path := filepath.Join(GinkgoT().TempDir(), "set.lua")
		Expect(os.WriteFile(path, []byte("setreg(1, 42)"), 0644)).To(Succeed())

		Expect(host.RunFile(path)).To(Succeed())
		Expect(c.GetRegister(1)).To(Equal(uint32(42)))
	})
})
