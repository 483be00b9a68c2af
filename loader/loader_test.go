package loader_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/urisc/asm"
	"github.com/sarchlab/urisc/emu"
	"github.com/sarchlab/urisc/loader"
)

var _ = Describe("Loader", func() {
	var dir string

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		ExpectWithOffset(1, os.WriteFile(path, []byte(content), 0644)).To(Succeed())
		return path
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	Describe("Load", func() {
		It("should assemble source files", func() {
			path := write("prog.s", "start: addi x1, x0, 5\naddi x2, x1, 1\n")

			prog, err := loader.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(prog.Path).To(Equal(path))
			Expect(prog.Listing).To(Equal("0x0080: 0x00500093\n0x0084: 0x00108113"))
			Expect(prog.Labels).To(HaveKeyWithValue("start", uint32(0x80)))
			Expect(prog.Words).To(HaveLen(2))
		})

		It("should treat .ASM as assembly", func() {
			path := write("PROG.ASM", "addi x1, x0, 5")
			prog, err := loader.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(prog.Words).To(ConsistOf(emu.ImageWord{Addr: 0x80, Value: 0x00500093}))
		})

		It("should parse listings", func() {
			path := write("prog.hex", "0x0080: 0x00500093\n0x0084: 0x00108113\n")

			prog, err := loader.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(prog.Words).To(Equal([]emu.ImageWord{
				{Addr: 0x80, Value: 0x00500093},
				{Addr: 0x84, Value: 0x00108113},
			}))
			Expect(prog.Labels).To(BeEmpty())
		})

		It("should wrap assembly errors with the file name", func() {
			path := write("bad.s", "mul x1, x2, x3")

			_, err := loader.Load(path)
			Expect(err).To(MatchError(asm.ErrUnknownInstruction))
			Expect(err.Error()).To(ContainSubstring("bad.s"))
		})

		It("should fail for malformed listings", func() {
			path := write("bad.txt", "not a listing")
			_, err := loader.Load(path)
			Expect(err).To(MatchError(emu.ErrImageSyntax))
		})

		It("should fail for missing files", func() {
			_, err := loader.Load(filepath.Join(dir, "absent.s"))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Program", func() {
		It("should load into memory", func() {
			path := write("prog.s", "addi x1, x0, 5")
			prog, err := loader.Load(path)
			Expect(err).NotTo(HaveOccurred())

			memory := emu.NewMemory()
			Expect(prog.LoadInto(memory)).To(Succeed())
			Expect(memory.LoadWord(0x80)).To(Equal(uint32(0x00500093)))
		})

		It("should report listings that do not fit", func() {
			path := write("prog.hex", "0x0100: 0x00000001")
			prog, err := loader.Load(path)
			Expect(err).NotTo(HaveOccurred())

			Expect(prog.LoadInto(emu.NewMemory())).To(MatchError(emu.ErrOutOfBounds))
		})
	})

	Describe("IsAssembly", func() {
		It("should match assembly extensions only", func() {
			Expect(loader.IsAssembly("a.s")).To(BeTrue())
			Expect(loader.IsAssembly("a.asm")).To(BeTrue())
			Expect(loader.IsAssembly("a.lst")).To(BeFalse())
			Expect(loader.IsAssembly("a")).To(BeFalse())
		})
	})
})
